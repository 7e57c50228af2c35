package rules

import (
	"testing"
)

// runRule evaluates a single registered rule against source content
func runRule(t *testing.T, id, source string) []int {
	t.Helper()
	rule, ok := Get(id)
	if !ok {
		t.Fatalf("Rule %s not registered", id)
	}

	var lines []int
	for _, f := range rule.Check("test.cs", []byte(source)) {
		lines = append(lines, f.Line)
	}
	return lines
}

func TestHardcodedSecret(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantLines []int
	}{
		{
			name:      "password literal",
			source:    `var password = "hunter2-prod";`,
			wantLines: []int{1},
		},
		{
			name: "connection string with inline credential",
			source: `var x = 1;
var connectionString = "Server=db;Password=s3cret;";`,
			wantLines: []int{2},
		},
		{
			name:      "configuration lookup is fine",
			source:    `var password = Configuration["Db:Password"]; var apiKey = "from-config";`,
			wantLines: nil,
		},
		{
			name:      "commented out line is skipped",
			source:    `// var apiKey = "abc123";`,
			wantLines: nil,
		},
		{
			name:      "json style key",
			source:    `"ApiKey": "abc123"`,
			wantLines: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runRule(t, "ASP001", tt.source)
			assertLines(t, got, tt.wantLines)
		})
	}
}

func TestCorsAnyOrigin(t *testing.T) {
	source := `builder.Services.AddCors(options =>
{
    options.AddPolicy("open", policy => policy.AllowAnyOrigin());
});`

	got := runRule(t, "ASP002", source)
	assertLines(t, got, []int{3})
}

func TestSyncOverAsync(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantLines []int
	}{
		{
			name:      "task result",
			source:    `var user = _repo.GetUserAsync(id).Result;`,
			wantLines: []int{1},
		},
		{
			name:      "wait call",
			source:    `task.Wait();`,
			wantLines: []int{1},
		},
		{
			name:      "get awaiter get result",
			source:    `var v = DoAsync().GetAwaiter().GetResult();`,
			wantLines: []int{1},
		},
		{
			name:      "await is fine",
			source:    `var user = await _repo.GetUserAsync(id);`,
			wantLines: nil,
		},
		{
			name:      "unrelated Result identifier",
			source:    `public IActionResult MyResultHelper() { return Ok(); }`,
			wantLines: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runRule(t, "ASP003", tt.source)
			assertLines(t, got, tt.wantLines)
		})
	}
}

func TestHTTPURL(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantLines []int
	}{
		{
			name:      "cleartext endpoint",
			source:    `client.BaseAddress = new Uri("http://api.example.com");`,
			wantLines: []int{1},
		},
		{
			name:      "localhost allowed",
			source:    `client.BaseAddress = new Uri("http://localhost:5000");`,
			wantLines: nil,
		},
		{
			name:      "xml namespace allowed",
			source:    `xmlns = "http://www.w3.org/2001/XMLSchema";`,
			wantLines: nil,
		},
		{
			name:      "https is fine",
			source:    `client.BaseAddress = new Uri("https://api.example.com");`,
			wantLines: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runRule(t, "ASP004", tt.source)
			assertLines(t, got, tt.wantLines)
		})
	}
}

func TestMissingAPIController(t *testing.T) {
	missing := `namespace Api.Controllers;

public class UsersController : ControllerBase
{
}`
	got := runRule(t, "ASP005", missing)
	assertLines(t, got, []int{3})

	annotated := `namespace Api.Controllers;

[ApiController]
public class UsersController : ControllerBase
{
}`
	got = runRule(t, "ASP005", annotated)
	assertLines(t, got, nil)

	// MVC controllers deriving from Controller are out of scope
	mvc := `public class HomeController : Controller {}`
	got = runRule(t, "ASP005", mvc)
	assertLines(t, got, nil)
}

func TestDeveloperExceptionPage(t *testing.T) {
	unguarded := `var app = builder.Build();
app.UseDeveloperExceptionPage();`
	got := runRule(t, "ASP006", unguarded)
	assertLines(t, got, []int{2})

	guarded := `var app = builder.Build();
if (app.Environment.IsDevelopment())
{
    app.UseDeveloperExceptionPage();
}`
	got = runRule(t, "ASP006", guarded)
	assertLines(t, got, nil)
}

func assertLines(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected findings on lines %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected finding on line %d, got %d", want[i], got[i])
		}
	}
}
