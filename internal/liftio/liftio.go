package liftio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Milford1337/Lift-Simulation/internal/liftlog"
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
)

var Log = logger.GetLogger()

const (
	INPUT_EXTENSION = ".csv"
	LOG_SUFFIX      = "_log.csv"
)

var (
	ErrWrongExtension = errors.New("input file must have a .csv extension")
	ErrMalformedRow   = errors.New("malformed row")
	ErrMissingColumn  = errors.New("missing column")
)

type column int

const (
	columnID column = iota
	columnRelease
	columnOrigin
	columnDestination
)

func (c column) String() string {
	switch c {
	case columnID:
		return "id"
	case columnRelease:
		return "release time"
	case columnOrigin:
		return "origin"
	case columnDestination:
		return "destination"
	default:
		return "unknown"
	}
}

var headerAliases = map[string]column{
	"id":                columnID,
	"passenger":         columnID,
	"passenger_id":      columnID,
	"time":              columnRelease,
	"release":           columnRelease,
	"release_time":      columnRelease,
	"origin":            columnOrigin,
	"from":              columnOrigin,
	"origin_floor":      columnOrigin,
	"destination":       columnDestination,
	"dest":              columnDestination,
	"to":                columnDestination,
	"destination_floor": columnDestination,
}

// ReadRequests parses and validates a passenger file. Any problem rejects the
// whole file. Requests are returned in (release, id) order.
func ReadRequests(path string) ([]liftrequest.Request, error) {
	if !strings.EqualFold(filepath.Ext(path), INPUT_EXTENSION) {
		return nil, fmt.Errorf("%s: %w", path, ErrWrongExtension)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s is empty: %w", path, ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("%s header: %v: %w", path, err, ErrMalformedRow)
	}

	indices, err := mapHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var requests []liftrequest.Request
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", path, err, ErrMalformedRow)
		}
		line, _ := reader.FieldPos(0)

		var values [4]int
		for col, index := range indices {
			value, err := strconv.Atoi(strings.TrimSpace(record[index]))
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %s %q is not an integer: %w", path, line, column(col), record[index], ErrMalformedRow)
			}
			values[col] = value
		}
		requests = append(requests, liftrequest.Request{
			ID:          values[columnID],
			Release:     values[columnRelease],
			Origin:      values[columnOrigin],
			Destination: values[columnDestination],
		})
	}

	if err := liftrequest.ValidateAll(requests); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	liftrequest.Sort(requests)
	Log.Debug().Msgf("Read %d passengers from %s", len(requests), path)
	return requests, nil
}

func mapHeader(header []string) ([4]int, error) {
	indices := [4]int{-1, -1, -1, -1}
	for i, name := range header {
		col, ok := headerAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if indices[col] != -1 {
			return indices, fmt.Errorf("%s named twice in header: %w", col, ErrMalformedRow)
		}
		indices[col] = i
	}
	for col, index := range indices {
		if index == -1 {
			return indices, fmt.Errorf("%s: %w", column(col), ErrMissingColumn)
		}
	}
	return indices, nil
}

// LogPath returns the log file name for an input file: same directory and base name.
func LogPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + LOG_SUFFIX
}

// PolicyLogPath is LogPath with the policy name added, for runs that compare policies.
func PolicyLogPath(inputPath string, policy string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_" + policy + LOG_SUFFIX
}

// WriteLog writes the log to a temporary file and renames it into place, so
// a failed write never leaves a partial log behind.
func WriteLog(path string, log *liftlog.Log) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	writer := csv.NewWriter(tmp)
	if err = writer.Write(log.Header()); err != nil {
		return fmt.Errorf("writing log header: %w", err)
	}
	if err = writer.WriteAll(log.Rows()); err != nil {
		return fmt.Errorf("writing log rows: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming log file: %w", err)
	}
	Log.Debug().Msgf("Wrote %d log entries to %s", log.Len(), path)
	return nil
}
