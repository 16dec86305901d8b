package web

import (
	"html/template"
	"net/http"
)

// indexPage holds data for rendering the index template.
type indexPage struct {
	Examples []string
}

// examples are shown on the index page and prefill the form.
var examples = []string{
	"SELECT id, name FROM users;",
	"SELECT name FROM users WHERE age > 18 ORDER BY name ASC;",
	"SELECT * FROM users WHERE active = TRUE;",
	"CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(50) NOT NULL, age INT CHECK (age > 0));",
}

// indexTemplate is the HTML template for the index page.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>sqlparse</title>
    <style>
        body { font-family: system-ui, sans-serif; margin: 20px; }
        textarea { width: 100%; font-family: monospace; }
        pre { background: #f4f4f4; padding: 10px; overflow-x: auto; }
        .error { color: red; }
    </style>
</head>
<body>
    <h1>sqlparse</h1>
    <p>Parse a single SELECT or CREATE TABLE statement and inspect its syntax tree.</p>
    <form id="parse-form">
        <textarea id="sql" rows="4">{{index .Examples 0}}</textarea>
        <p>
            <button type="submit" data-endpoint="/api/parse">Parse</button>
            <button type="submit" data-endpoint="/api/tokenize">Tokenize</button>
        </p>
    </form>
    <pre id="result"></pre>
    <h2>Examples</h2>
    <ul>
    {{range .Examples}}
        <li><code>{{.}}</code></li>
    {{end}}
    </ul>
    <p><a href="/health">Health Check</a></p>
    <script>
    document.getElementById("parse-form").addEventListener("submit", async (e) => {
        e.preventDefault();
        const resp = await fetch(e.submitter.dataset.endpoint, {
            method: "POST",
            headers: {"Content-Type": "application/json"},
            body: JSON.stringify({sql: document.getElementById("sql").value}),
        });
        const body = await resp.json();
        const out = document.getElementById("result");
        out.className = body.success ? "" : "error";
        out.textContent = JSON.stringify(body.success ? body.data : body, null, 2);
    });
    </script>
</body>
</html>`))

// handleIndex serves the main page of the web UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := indexTemplate.Execute(w, indexPage{Examples: examples}); err != nil {
		GetLogger(r).Error("render index", "error", err)
	}
}

// handleHealth returns a simple health check response.
// This endpoint is used by load balancers and monitoring systems.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
