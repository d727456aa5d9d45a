package claude

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListProjects lists project directories under <home>/projects/. A missing
// projects root is the "no data yet" state, not an error.
func ListProjects(home string) ([]ProjectDir, error) {
	dir := filepath.Join(home, "projects")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var projects []ProjectDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		projects = append(projects, ProjectDir{
			Key:  entry.Name(),
			Path: DecodeProjectPath(entry.Name()),
			Dir:  filepath.Join(dir, entry.Name()),
		})
	}
	return projects, nil
}

// ListSessionFiles lists the .jsonl transcripts in a project directory,
// newest first by modification time. A missing directory yields nil.
func ListSessionFiles(projectDir string) ([]SessionFile, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []SessionFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, SessionFile{
			ID:      strings.TrimSuffix(entry.Name(), ".jsonl"),
			Path:    filepath.Join(projectDir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// DataExists reports whether the log root contains any project data.
func DataExists(home string) bool {
	info, err := os.Stat(filepath.Join(home, "projects"))
	return err == nil && info.IsDir()
}
