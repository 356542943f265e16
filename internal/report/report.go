// Package report merges per-repo inspection outcomes into ordered,
// filterable result sets.
//
// Rows are grouped by watch-list order; within a repo, branch and
// commit matches keep the order the git collaborator returned.
// Failed repos stay in the report as error rows so users can see
// which repos errored, while repos with zero matches contribute
// zero rows.
package report

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/msandoval/grepo/internal/dispatch"
)

// Row is one line of an aggregated report.
type Row struct {
	Repo   string `json:"repo"`
	Item   string `json:"item"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Report is the merged view across all watched repositories for one operation.
type Report struct {
	Rows   []Row
	Total  int // repos inspected
	Failed int // repos whose inspection call failed
}

// AllOK reports whether every repo succeeded.
func (r *Report) AllOK() bool {
	return r.Failed == 0
}

// Scope selects which commit field a commit search matches against.
type Scope int

const (
	// ScopeMessage matches the commit message.
	ScopeMessage Scope = iota
	// ScopeAuthor matches the commit author name.
	ScopeAuthor
)

// CurrentBranch produces one row per repo: the branch it is on, or
// an error row when the call failed.
func CurrentBranch(outcomes []dispatch.Outcome) Report {
	rep := Report{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Err != nil {
			rep.Failed++
			rep.Rows = append(rep.Rows, Row{Repo: o.Repo.Name, Error: o.Err.Error()})
			continue
		}
		rep.Rows = append(rep.Rows, Row{Repo: o.Repo.Name, Item: o.Branch})
	}
	return rep
}

// BranchSearch filters each repo's branches by pattern.
//
// An empty pattern matches everything (branch listing). The default
// match is a case-sensitive literal substring; with fuzzyMatch set,
// branches are instead ranked by fuzzy relevance within each repo.
func BranchSearch(outcomes []dispatch.Outcome, pattern string, fuzzyMatch bool) Report {
	rep := Report{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Err != nil {
			rep.Failed++
			rep.Rows = append(rep.Rows, Row{Repo: o.Repo.Name, Error: o.Err.Error()})
			continue
		}
		for _, branch := range matchBranches(o.Branches, pattern, fuzzyMatch) {
			rep.Rows = append(rep.Rows, Row{Repo: o.Repo.Name, Item: branch})
		}
	}
	return rep
}

func matchBranches(branches []string, pattern string, fuzzyMatch bool) []string {
	if pattern == "" {
		return branches
	}

	if fuzzyMatch {
		matches := fuzzy.Find(pattern, branches)
		ranked := make([]string, 0, len(matches))
		for _, m := range matches {
			ranked = append(ranked, m.Str)
		}
		return ranked
	}

	var matched []string
	for _, branch := range branches {
		if strings.Contains(branch, pattern) {
			matched = append(matched, branch)
		}
	}
	return matched
}

// CommitSearch filters each repo's commit log by a case-sensitive
// substring match on the field selected by scope. Rows carry the
// short hash as item and the commit message as detail.
func CommitSearch(outcomes []dispatch.Outcome, pattern string, scope Scope) Report {
	rep := Report{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Err != nil {
			rep.Failed++
			rep.Rows = append(rep.Rows, Row{Repo: o.Repo.Name, Error: o.Err.Error()})
			continue
		}
		for _, c := range o.Commits {
			field := c.Message
			if scope == ScopeAuthor {
				field = c.Author
			}
			if !strings.Contains(field, pattern) {
				continue
			}
			rep.Rows = append(rep.Rows, Row{
				Repo:   o.Repo.Name,
				Item:   c.ShortHash(),
				Detail: c.Message,
			})
		}
	}
	return rep
}
