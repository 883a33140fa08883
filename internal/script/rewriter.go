package script

import "fmt"

// Rewriter owns the backup-once / overwrite protocol for one session.
type Rewriter struct {
	script   *Script
	original string
	backedUp bool
}

type Outcome struct {
	BackupPath    string
	BackupCreated bool
}

// NewRewriter captures the script's current content as the session original.
// Later rounds never re-capture it.
func NewRewriter(s *Script) (*Rewriter, error) {
	content, err := s.Read()
	if err != nil {
		return nil, err
	}
	return &Rewriter{script: s, original: content}, nil
}

func (w *Rewriter) Original() string { return w.original }

func (w *Rewriter) BackedUp() bool { return w.backedUp }

func (w *Rewriter) BackupPath() string { return BackupPath(w.script.Path) }

// Apply writes the backup on first use, then replaces the script with corrected.
func (w *Rewriter) Apply(corrected string) (Outcome, error) {
	out := Outcome{BackupPath: w.BackupPath()}
	if !w.backedUp {
		if err := WriteFileAtomic(out.BackupPath, w.original); err != nil {
			return out, fmt.Errorf("could not write backup '%s': %w", out.BackupPath, err)
		}
		w.backedUp = true
		out.BackupCreated = true
	}
	if err := WriteFileAtomic(w.script.Path, corrected); err != nil {
		return out, fmt.Errorf("could not save corrected script: %w", err)
	}
	return out, nil
}
