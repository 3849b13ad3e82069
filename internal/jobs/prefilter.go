package jobs

import "strings"

// KeywordPrefilter keeps jobs where some candidate skill is contained in one
// of the job's required skills, preserving order. It is deliberately coarse;
// scoring decides the final ranking. A non-positive limit means no limit.
func KeywordPrefilter(all []Job, skills []string, limit int) []Job {
	needles := lowerNonEmpty(skills)
	if len(needles) == 0 {
		return []Job{}
	}

	out := make([]Job, 0)
	for _, job := range all {
		if limit > 0 && len(out) >= limit {
			break
		}
		if containsAnySkill(job.RequiredSkills, needles) {
			out = append(out, job)
		}
	}
	return out
}

// FilterByTitle keeps jobs whose title contains title, case-insensitively.
// An empty title keeps everything.
func FilterByTitle(all []Job, title string) []Job {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return all
	}

	out := make([]Job, 0, len(all))
	for _, job := range all {
		if strings.Contains(strings.ToLower(job.Title), title) {
			out = append(out, job)
		}
	}
	return out
}

func containsAnySkill(required, needles []string) bool {
	for _, req := range required {
		req = strings.ToLower(strings.TrimSpace(req))
		if req == "" {
			continue
		}
		for _, n := range needles {
			if strings.Contains(req, n) {
				return true
			}
		}
	}
	return false
}

func lowerNonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
