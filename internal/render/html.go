package render

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/qualitywatch/gate-report/internal/types"
)

// WriteHTML writes a check result as a self-contained dark-mode HTML page to path.
func WriteHTML(path string, result *types.CheckResult) error {
	var buf bytes.Buffer
	buildHTML(&buf, result)
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func buildHTML(buf *bytes.Buffer, result *types.CheckResult) {
	w := func(s string) { buf.WriteString(s) }
	wf := func(f string, a ...any) { buf.WriteString(fmt.Sprintf(f, a...)) }
	e := html.EscapeString

	verdict, verdictColor := "PASSED", "#3fb950"
	if !result.Passed {
		verdict, verdictColor = "FAILED", "#f85149"
	}

	branch := result.Branch
	if branch == "" {
		branch = "main branch"
	}

	w(`<!DOCTYPE html><html lang="en"><head>
<meta charset="utf-8"/><meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>Quality Gate Report</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{background:#0d1117;color:#c9d1d9;font-family:system-ui,"Segoe UI",Arial,sans-serif;font-size:14px;line-height:1.5}
h2{color:#f0f6fc;font-size:1.05em;margin:16px 0 8px}
.hdr{background:#161b22;border-bottom:1px solid #30363d;padding:14px 22px;display:flex;align-items:center;gap:16px}
.hdr h1{color:#f0f6fc;font-size:1.3em}
.hdr-meta{color:#8b949e;font-size:.82em;margin-top:3px}
.badge{display:inline-block;padding:3px 10px;border-radius:12px;font-weight:700;font-size:.85em;border:1px solid}
.wrap{padding:20px;max-width:860px}
table{width:100%;border-collapse:collapse;margin-top:6px;font-size:.86em}
th{background:#161b22;color:#8b949e;text-align:left;padding:7px 9px;border-bottom:1px solid #30363d;white-space:nowrap}
td{padding:6px 9px;border-bottom:1px solid #21262d;vertical-align:top;word-break:break-word}
tr:hover td{background:#161b22}
.ok{color:#3fb950}.err{color:#f85149}
.card{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:14px;margin-bottom:14px}
</style></head><body>
`)

	w(`<div class="hdr"><div>`)
	wf(`<h1>%s</h1>`, e(result.Project))
	wf(`<div class="hdr-meta">%s &middot; %s &middot; %s</div>`, e(result.Gate), e(branch), e(result.GeneratedAt))
	w(`</div>`)
	wf(`<span class="badge" style="color:%s;border-color:%s">%s</span>`, verdictColor, verdictColor, verdict)
	w(`</div><div class="wrap">`)

	w(`<h2>Conditions</h2>`)
	if result.Report.Len() == 0 {
		w(`<div class="card">No conditions evaluated.</div>`)
	} else {
		w(`<table><tr><th>Metric</th><th>Status</th></tr>`)
		for _, name := range result.Report.Names() {
			status, _ := result.Report.Get(name)
			class := "ok"
			if strings.HasPrefix(status, types.ConditionStatusError) {
				class = "err"
			}
			wf(`<tr><td>%s</td><td class="%s">%s</td></tr>`, e(name), class, e(status))
		}
		w(`</table>`)
	}

	if len(result.Failures) > 0 {
		w(`<h2>Failing Conditions</h2><div class="card"><ul style="margin-left:18px">`)
		for _, name := range result.Failures {
			status, _ := result.Report.Get(name)
			wf(`<li><strong>%s</strong>: <span class="err">%s</span></li>`, e(name), e(status))
		}
		w(`</ul></div>`)
	}

	w(`</div></body></html>`)
}
