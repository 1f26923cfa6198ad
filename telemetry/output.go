package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/swamp/config"
)

// ResultsHeader is the legacy header line of the results file.
const ResultsHeader = "PredProb, ReproProb, Time, Number Of Snails"

// OutputManager handles the sweep's CSV files.
// The results file is appended to across invocations; the positions and
// trajectory files are recreated per invocation and are optional.
type OutputManager struct {
	resultsPath    string
	resultsFile    *os.File
	positionsFile  *os.File
	trajectoryFile *os.File

	// Track if headers have been written
	positionsHeaderWritten  bool
	trajectoryHeaderWritten bool
}

// OutputPaths names the files an OutputManager writes. Empty optional paths
// disable that file.
type OutputPaths struct {
	Results    string
	Positions  string
	Trajectory string
}

// NewOutputManager opens the output files. The results file is created with
// its header if it does not exist yet.
func NewOutputManager(paths OutputPaths) (*OutputManager, error) {
	if paths.Results == "" {
		return nil, fmt.Errorf("results path is required")
	}

	om := &OutputManager{resultsPath: paths.Results}

	if dir := filepath.Dir(paths.Results); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.OpenFile(paths.Results, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening results file: %w", err)
	}
	om.resultsFile = f

	info, err := f.Stat()
	if err != nil {
		om.Close()
		return nil, fmt.Errorf("stat results file: %w", err)
	}
	if info.Size() == 0 {
		if _, err := io.WriteString(f, ResultsHeader+"\n"); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing results header: %w", err)
		}
	}

	if paths.Positions != "" {
		f, err := os.Create(paths.Positions)
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating positions file: %w", err)
		}
		om.positionsFile = f
	}

	if paths.Trajectory != "" {
		f, err := os.Create(paths.Trajectory)
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating trajectory file: %w", err)
		}
		om.trajectoryFile = f
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config, path string) error {
	if om == nil || path == "" {
		return nil
	}
	return cfg.WriteYAML(path)
}

// WriteResult appends one combination's peak to the results file.
func (om *OutputManager) WriteResult(row ResultRow) error {
	if om == nil {
		return nil
	}
	// The header is written once by NewOutputManager in its legacy spelling.
	if err := gocsv.MarshalWithoutHeaders([]ResultRow{row}, om.resultsFile); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

// SaveResult implements ResultStore by writing the CSV row.
func (om *OutputManager) SaveResult(_ context.Context, rec ResultRecord) error {
	return om.WriteResult(rec.Row)
}

// WantsPositions reports whether a positions file is open.
func (om *OutputManager) WantsPositions() bool {
	return om != nil && om.positionsFile != nil
}

// WritePositions appends position log records.
func (om *OutputManager) WritePositions(records []PositionRecord) error {
	if !om.WantsPositions() || len(records) == 0 {
		return nil
	}

	if !om.positionsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.positionsFile); err != nil {
			return fmt.Errorf("writing positions: %w", err)
		}
		om.positionsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.positionsFile); err != nil {
			return fmt.Errorf("writing positions: %w", err)
		}
	}

	return nil
}

// WantsTrajectory reports whether a trajectory file is open.
func (om *OutputManager) WantsTrajectory() bool {
	return om != nil && om.trajectoryFile != nil
}

// WriteTrajectory appends per-tick region rows.
func (om *OutputManager) WriteTrajectory(rows []TrajectoryRow) error {
	if !om.WantsTrajectory() || len(rows) == 0 {
		return nil
	}

	if !om.trajectoryHeaderWritten {
		if err := gocsv.Marshal(rows, om.trajectoryFile); err != nil {
			return fmt.Errorf("writing trajectory: %w", err)
		}
		om.trajectoryHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(rows, om.trajectoryFile); err != nil {
			return fmt.Errorf("writing trajectory: %w", err)
		}
	}

	return nil
}

// ResultsPath returns the results file path.
func (om *OutputManager) ResultsPath() string {
	if om == nil {
		return ""
	}
	return om.resultsPath
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	for _, f := range []*os.File{om.resultsFile, om.positionsFile, om.trajectoryFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	om.resultsFile, om.positionsFile, om.trajectoryFile = nil, nil, nil
	return firstErr
}
