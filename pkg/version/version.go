package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

const devVersion = "0.0.0-dev"

// Info agrupa a identificação do binário.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

// Current retorna a versão em uso (ldflags ou build info).
func Current() Info {
	return Info{Version: Version, Commit: Commit, BuildTime: BuildTime}
}

// withBuildInfo completa os campos vazios de info com os dados vcs.* embutidos pelo Go.
// Valores vindos de ldflags nunca são sobrescritos.
func withBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if bi == nil || (info.Version != "" && info.Version != devVersion) {
		return info
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; info.Commit == "" && len(rev) >= 7 {
		info.Commit = rev[:7]
	}
	if ts, err := time.Parse(time.RFC3339, settings["vcs.time"]); info.BuildTime == "" && err == nil {
		info.BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
	}
	if tag := settings["vcs.tag"]; tag != "" {
		info.Version = strings.TrimPrefix(tag, "v")
		if strings.EqualFold(settings["vcs.modified"], "true") {
			info.Version += "-dirty"
		}
	}
	return info
}

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		info := withBuildInfo(Current(), bi)
		Version, Commit, BuildTime = info.Version, info.Commit, info.BuildTime
	}
}

// String formata a versão com commit e data de build.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func (i Info) String() string {
	ver := i.Version
	if ver == "" {
		ver = devVersion
	}
	switch {
	case i.Commit == "" && i.BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case i.Commit == "":
		return fmt.Sprintf("%s (commit: development, built at: %s)", ver, i.BuildTime)
	case i.BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, i.Commit)
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, i.Commit, i.BuildTime)
}

// FormatVersion retorna a versão atual formatada.
func FormatVersion() string {
	return Current().String()
}

// Checker consulta a última release publicada.
type Checker struct {
	Client *http.Client
	URL    string
}

// DefaultChecker aponta para as releases do projeto no GitHub.
var DefaultChecker = Checker{
	Client: &http.Client{Timeout: 3 * time.Second},
	URL:    "https://api.github.com/repos/diillson/client-insights-go/releases/latest",
}

// Latest retorna a tag da última release, sem o prefixo "v".
func (c Checker) Latest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, c.URL)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("error decoding release: %w", err)
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// UpdateAvailable reporta a versão mais nova que current, se houver.
// Versões de desenvolvimento nunca são comparadas.
func (c Checker) UpdateAvailable(ctx context.Context, current string) (string, bool) {
	if strings.HasSuffix(current, "-dev") {
		return "", false
	}
	latest, err := c.Latest(ctx)
	if err != nil || !isNewer(latest, current) {
		return "", false
	}
	return latest, true
}

// CheckLatestVersion avisa no console quando há uma release mais nova.
// Falhas de rede são ignoradas.
func CheckLatestVersion(currentVersion string) {
	latest, ok := DefaultChecker.UpdateAvailable(context.Background(), currentVersion)
	if !ok {
		return
	}
	pterm.Warning.Println(fmt.Sprintf("A new version of Client Insights is available: %s", latest))
	pterm.Info.Println("Please update using: go install github.com/diillson/client-insights-go/cmd/client-insights@latest")
}

// isNewer compara versões no formato X.Y.Z numericamente ("1.10.0" > "1.9.3").
// Sufixos como "-dirty" são ignorados.
func isNewer(latest, current string) bool {
	lp, cp := versionParts(latest), versionParts(current)
	for i := 0; i < max(len(lp), len(cp)); i++ {
		var l, c int
		if i < len(lp) {
			l = lp[i]
		}
		if i < len(cp) {
			c = cp[i]
		}
		if l != c {
			return l > c
		}
	}
	return false
}

func versionParts(v string) []int {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+ "); i >= 0 {
		v = v[:i]
	}
	var parts []int
	for _, p := range strings.Split(v, ".") {
		n, err := strconv.Atoi(p)
		if err != nil {
			break
		}
		parts = append(parts, n)
	}
	return parts
}
