package analytics

import (
	"context"
	"errors"
)

// CloudCapabilities lists what the cloud analytics module demonstrates.
var CloudCapabilities = []string{
	"Real-time dataset loading through cloud",
	"Cloud scalability concepts",
	"Distributed data processing",
}

// DatasetInfo describes the loaded dataset for the cloud analytics page.
type DatasetInfo struct {
	Records int      `json:"records"`
	Columns []string `json:"columns"`
	Loaded  bool     `json:"loaded"`
	Error   string   `json:"error,omitempty"`
}

// DatasetInfo reports the shape of the dataset. A load failure is described
// rather than returned, since the page stays useful without data.
func (s *Service) DatasetInfo(ctx context.Context) DatasetInfo {
	f, err := s.Frame(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return DatasetInfo{Error: "request canceled"}
		}
		return DatasetInfo{Error: err.Error()}
	}
	return DatasetInfo{
		Records: f.Len(),
		Columns: f.Columns(),
		Loaded:  true,
	}
}
