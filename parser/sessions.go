package parser

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoHistory is returned when session discovery finds no .jsonl files.
var ErrNoHistory = errors.New("no history files found")

// historyDirEnv overrides the default history base directory.
const historyDirEnv = "CLAUDE_HISTORY_DIR"

// SessionInfo describes one discovered session file.
type SessionInfo struct {
	Path    string
	Project string // directory name under the base dir
	Session string // file name without the .jsonl suffix
	ModTime time.Time
	Size    int64
}

// DefaultBaseDir returns the history base directory: $CLAUDE_HISTORY_DIR if
// set, otherwise ~/.claude/projects.
func DefaultBaseDir() string {
	if dir := os.Getenv(historyDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".claude", "projects")
	}
	return filepath.Join(home, ".claude", "projects")
}

// FindHistoryFiles lists every session under baseDir ({base}/{project}/*.jsonl),
// newest first. Returns ErrNoHistory when nothing is found.
func FindHistoryFiles(baseDir string) ([]SessionInfo, error) {
	projects, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoHistory
		}
		return nil, err
	}

	var sessions []SessionInfo
	for _, proj := range projects {
		if !proj.IsDir() {
			continue
		}
		dir := filepath.Join(baseDir, proj.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, ent := range entries {
			if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".jsonl") {
				continue
			}
			info, err := ent.Info()
			if err != nil {
				continue
			}
			sessions = append(sessions, SessionInfo{
				Path:    filepath.Join(dir, ent.Name()),
				Project: proj.Name(),
				Session: strings.TrimSuffix(ent.Name(), ".jsonl"),
				ModTime: info.ModTime(),
				Size:    info.Size(),
			})
		}
	}

	if len(sessions) == 0 {
		return nil, ErrNoHistory
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ModTime.After(sessions[j].ModTime)
	})
	return sessions, nil
}

// ProjectSessions filters discovery to one project. The project may be
// given as a directory name, an absolute path, or a path fragment; paths
// are normalized the way the producer names project directories, with every
// separator and dot replaced by a dash.
func ProjectSessions(baseDir, project string) ([]SessionInfo, error) {
	all, err := FindHistoryFiles(baseDir)
	if err != nil {
		return nil, err
	}

	want := NormalizeProjectName(project)
	var matched []SessionInfo
	for _, s := range all {
		if s.Project == want || strings.Contains(s.Project, want) {
			matched = append(matched, s)
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoHistory
	}
	return matched, nil
}

// LatestSession returns the most recently modified session under baseDir.
func LatestSession(baseDir string) (SessionInfo, error) {
	sessions, err := FindHistoryFiles(baseDir)
	if err != nil {
		return SessionInfo{}, err
	}
	return sessions[0], nil
}

// NormalizeProjectName converts a filesystem path into the flattened
// directory naming the producer uses: /home/user/my.app -> -home-user-my-app.
func NormalizeProjectName(p string) string {
	p = strings.ReplaceAll(p, string(filepath.Separator), "-")
	p = strings.ReplaceAll(p, "/", "-")
	return strings.ReplaceAll(p, ".", "-")
}
