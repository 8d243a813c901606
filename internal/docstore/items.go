package docstore

import (
	"fmt"

	"github.com/bgrant/devnotes/internal/domain"
)

// AddReport appends a new report to the project.
func (s *Store) AddReport(projectID, title, content, date string) (domain.Report, error) {
	r := domain.Report{
		ID:      domain.NewID(),
		Title:   title,
		Content: content,
		Date:    date,
		Images:  []domain.AnnotatedImage{},
	}
	err := s.mutateProject(projectID, func(p *domain.Project) {
		p.Reports = append(p.Reports, r)
	})
	if err != nil {
		return domain.Report{}, err
	}
	return r, nil
}

// UpdateReport replaces the report with the same id within the project.
func (s *Store) UpdateReport(projectID string, r domain.Report) error {
	if r.Images == nil {
		r.Images = []domain.AnnotatedImage{}
	}
	return s.mutateReport(projectID, r.ID, func(dst *domain.Report) { *dst = r })
}

// SetReportImages replaces the report's annotated image collection. This is
// the canvas's persistence path.
func (s *Store) SetReportImages(projectID, reportID string, images []domain.AnnotatedImage) error {
	if images == nil {
		images = []domain.AnnotatedImage{}
	}
	return s.mutateReport(projectID, reportID, func(r *domain.Report) { r.Images = images })
}

// SoftDeleteReport flags the report deleted. Sibling items are untouched.
func (s *Store) SoftDeleteReport(projectID, reportID string) error {
	return s.mutateReport(projectID, reportID, func(r *domain.Report) { r.IsDeleted = true })
}

// RestoreReport clears the report's deleted flag.
func (s *Store) RestoreReport(projectID, reportID string) error {
	return s.mutateReport(projectID, reportID, func(r *domain.Report) { r.IsDeleted = false })
}

// DeleteReport removes the report from the project entirely.
func (s *Store) DeleteReport(projectID, reportID string) error {
	found := false
	err := s.mutateProject(projectID, func(p *domain.Project) {
		for i := range p.Reports {
			if p.Reports[i].ID == reportID {
				p.Reports = append(p.Reports[:i], p.Reports[i+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("report %s: %w", reportID, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) mutateReport(projectID, reportID string, fn func(*domain.Report)) error {
	found := false
	err := s.mutateProject(projectID, func(p *domain.Project) {
		for i := range p.Reports {
			if p.Reports[i].ID == reportID {
				fn(&p.Reports[i])
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("report %s: %w", reportID, domain.ErrNotFound)
	}
	return nil
}

// AddLog appends a new development log entry to the project.
func (s *Store) AddLog(projectID, title, content, date string) (domain.DevelopmentLog, error) {
	l := domain.DevelopmentLog{
		ID:      domain.NewID(),
		Title:   title,
		Content: content,
		Date:    date,
		Images:  []domain.AnnotatedImage{},
	}
	err := s.mutateProject(projectID, func(p *domain.Project) {
		p.Logs = append(p.Logs, l)
	})
	if err != nil {
		return domain.DevelopmentLog{}, err
	}
	return l, nil
}

// UpdateLog replaces the log entry with the same id within the project.
func (s *Store) UpdateLog(projectID string, l domain.DevelopmentLog) error {
	if l.Images == nil {
		l.Images = []domain.AnnotatedImage{}
	}
	return s.mutateLog(projectID, l.ID, func(dst *domain.DevelopmentLog) { *dst = l })
}

// SetLogImages replaces the log entry's annotated image collection.
func (s *Store) SetLogImages(projectID, logID string, images []domain.AnnotatedImage) error {
	if images == nil {
		images = []domain.AnnotatedImage{}
	}
	return s.mutateLog(projectID, logID, func(l *domain.DevelopmentLog) { l.Images = images })
}

// SoftDeleteLog flags the log entry deleted. Sibling items are untouched.
func (s *Store) SoftDeleteLog(projectID, logID string) error {
	return s.mutateLog(projectID, logID, func(l *domain.DevelopmentLog) { l.IsDeleted = true })
}

// RestoreLog clears the log entry's deleted flag.
func (s *Store) RestoreLog(projectID, logID string) error {
	return s.mutateLog(projectID, logID, func(l *domain.DevelopmentLog) { l.IsDeleted = false })
}

// DeleteLog removes the log entry from the project entirely.
func (s *Store) DeleteLog(projectID, logID string) error {
	found := false
	err := s.mutateProject(projectID, func(p *domain.Project) {
		for i := range p.Logs {
			if p.Logs[i].ID == logID {
				p.Logs = append(p.Logs[:i], p.Logs[i+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("log %s: %w", logID, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) mutateLog(projectID, logID string, fn func(*domain.DevelopmentLog)) error {
	found := false
	err := s.mutateProject(projectID, func(p *domain.Project) {
		for i := range p.Logs {
			if p.Logs[i].ID == logID {
				fn(&p.Logs[i])
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("log %s: %w", logID, domain.ErrNotFound)
	}
	return nil
}
