package cmd

import (
	"bytes"
	"runtime"

	"github.com/Masterminds/sprig"
	"github.com/alecthomas/template"
)

// Set by goreleaser
var (
	Version   = "dev"
	Commit    = "none"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

var versionTemplate = template.Must(template.New("version").Funcs(template.FuncMap(sprig.GenericFuncMap())).Parse(
	`bytesink Version: {{ .Version }}
Git SHA: {{ .Commit | trunc 12 }}
Go Version: {{ .GoVersion }}
Go OS/Arch: {{ .OS }}/{{ .Arch }}
Built at: {{ .Date | default "unknown" }}`))

func versionStanza() string {
	var buf bytes.Buffer
	err := versionTemplate.Execute(&buf, map[string]string{
		"Version":   Version,
		"Commit":    Commit,
		"Date":      Date,
		"GoVersion": GoVersion,
		"OS":        runtime.GOOS,
		"Arch":      runtime.GOARCH,
	})

	if err != nil {
		panic(err)
	}

	return buf.String()
}
