package assembler

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Deployment environments vary in where the working directory lands, so
// template discovery is best-effort across a fixed candidate list rather
// than a single configured path.
var commonDeployRoots = []string{
	"/var/app/current",
	"/app",
	"/home/app",
	"/usr/src/app",
}

var relativeDepths = []string{"", "./", "../", "../../"}

// templateCandidates builds the ordered list of locations to probe for
// the template file. extraRoots (the configured template dir) come first,
// then the executable's directory, the working directory, the filesystem
// root, relative paths at several depths, common deployment roots, and
// finally the user's home.
func templateCandidates(filename string, extraRoots []string) []string {
	var candidates []string
	for _, root := range extraRoots {
		candidates = append(candidates, filepath.Join(root, filename))
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), filename))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, filename))
	}
	candidates = append(candidates,
		filepath.Join("/", filename),
		filepath.Join("/app", filename),
	)
	for _, depth := range relativeDepths {
		candidates = append(candidates, depth+filename)
	}
	for _, root := range commonDeployRoots {
		candidates = append(candidates, filepath.Join(root, filename))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, filename))
	}
	return candidates
}

// locateTemplate returns the first candidate that exists on disk. When
// none exist it returns the first candidate anyway, deferring the
// failure to the load step so the caller sees a clear not-found error
// instead of a silent default.
func locateTemplate(filename string, extraRoots []string, log *slog.Logger) string {
	candidates := templateCandidates(filename, extraRoots)
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			log.Info("template located", "path", c)
			return c
		}
	}
	log.Warn("template not found at any candidate location", "fallback", candidates[0], "probed", len(candidates))
	return candidates[0]
}
