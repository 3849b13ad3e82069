package jobs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func ids(list []Job) string {
	out := make([]string, 0, len(list))
	for _, j := range list {
		out = append(out, j.ID)
	}
	return strings.Join(out, ",")
}

func sampleJobs() []Job {
	return []Job{
		{ID: "1", Title: "Backend Go Developer", RequiredSkills: []string{"Golang", "PostgreSQL"}},
		{ID: "2", Title: "Frontend Engineer", RequiredSkills: []string{"React", "TypeScript"}},
		{ID: "3", Title: "Platform Engineer", RequiredSkills: []string{"Kubernetes", "Go"}},
		{ID: "4", Title: "Data Analyst", RequiredSkills: nil},
		{ID: "5", Title: "Senior Go Engineer", RequiredSkills: []string{"go", "AWS"}},
	}
}

func TestKeywordPrefilter(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		limit  int
		want   string
	}{
		{name: "substring containment", skills: []string{" GO "}, want: "1,3,5"},
		{name: "limit keeps order", skills: []string{"go"}, limit: 2, want: "1,3"},
		{name: "several skills", skills: []string{"react", "aws"}, want: "2,5"},
		{name: "no skills", skills: []string{"", " "}, want: ""},
		{name: "nothing matches", skills: []string{"cobol"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeywordPrefilter(sampleJobs(), tt.skills, tt.limit)
			if ids(got) != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, ids(got))
			}
		})
	}
}

func TestJobActive(t *testing.T) {
	for status, want := range map[string]bool{"": true, "Active": true, "open": true, "closed": false, "archived": false} {
		if got := (Job{Status: status}).Active(); got != want {
			t.Fatalf("status %q: expected %v", status, want)
		}
	}
}

func TestFileCorpusSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	content := `[
		{"id": "1", "title": "Go Developer", "requiredSkills": ["Go"], "experience": {"min": 3, "max": 5}},
		{"id": "2", "title": "Go Lead", "requiredSkills": ["Go", "Leadership"], "status": "closed"},
		{"id": "3", "title": "Designer", "requiredSkills": ["Figma"]}
	]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write jobs file: %v", err)
	}

	corpus, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(corpus.All()) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(corpus.All()))
	}
	first := corpus.All()[0]
	if first.Experience.Min == nil || *first.Experience.Min != 3 || *first.Experience.Max != 5 {
		t.Fatalf("unexpected experience range: %+v", first.Experience)
	}

	got, err := corpus.Search(context.Background(), Query{Skills: []string{"go"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if ids(got) != "1,2" {
		t.Fatalf("unexpected skill search: %q", ids(got))
	}

	got, _ = corpus.Search(context.Background(), Query{Title: "designer"})
	if ids(got) != "3" {
		t.Fatalf("unexpected title search: %q", ids(got))
	}

	got, _ = corpus.Search(context.Background(), Query{Limit: 1})
	if ids(got) != "1" {
		t.Fatalf("unexpected limited search: %q", ids(got))
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestBuildSearchSQL(t *testing.T) {
	sql, args := buildSearchSQL(Query{Title: "Go_Dev", Skills: []string{"Go", " "}, Limit: 30})

	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	if args[0] != `%go\_dev%` {
		t.Fatalf("unexpected title pattern: %v", args[0])
	}
	if skills, ok := args[1].([]string); !ok || len(skills) != 1 || skills[0] != "go" {
		t.Fatalf("unexpected skills arg: %#v", args[1])
	}
	for _, fragment := range []string{"lower(title) LIKE $1", "unnest($2::text[])", "LIMIT $3"} {
		if !strings.Contains(sql, fragment) {
			t.Fatalf("expected %q in sql:\n%s", fragment, sql)
		}
	}

	sql, args = buildSearchSQL(Query{})
	if len(args) != 0 || strings.Contains(sql, "WHERE") || strings.Contains(sql, "LIMIT") {
		t.Fatalf("expected unfiltered query, got %s %v", sql, args)
	}
}
