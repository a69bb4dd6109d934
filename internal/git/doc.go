// Package git publishes imported posts by shelling out to the git executable.
//
// A Repo runs commands in a working directory, captures stdout/stderr and
// translates failures into *output.ExitError values:
//
//	repo := git.Repo{Dir: "."}
//	committed, err := repo.StageAndCommit(ctx, "posts", "Import LinkedIn posts (3 new, 0 updated)")
//	if committed {
//	    err = repo.Push(ctx, "origin")
//	}
//
// StageAndCommit stages a pathspec, checks for pending changes under it and
// commits only that pathspec, so unrelated staged work is left alone.
package git
