package liftio

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
	"github.com/Milford1337/Lift-Simulation/internal/liftlog"
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
	"github.com/rs/zerolog"
)

func init() {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
}

func writeInput(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestReadRequests(t *testing.T) {
	path := writeInput(t, "passengers.csv", "destination, Origin ,time,id\n2,3,0,2\n10,1,0,1\n4,6,12,3\n")
	requests, err := ReadRequests(path)
	if err != nil {
		t.Fatalf("Expected input to parse, got %v", err)
	}

	expected := []liftrequest.Request{
		{ID: 1, Origin: 1, Destination: 10, Release: 0},
		{ID: 2, Origin: 3, Destination: 2, Release: 0},
		{ID: 3, Origin: 6, Destination: 4, Release: 12},
	}
	if len(requests) != len(expected) {
		t.Fatalf("Expected %d requests, got %d", len(expected), len(requests))
	}
	for i := range expected {
		if requests[i] != expected[i] {
			t.Errorf("Request %d: expected %v, got %v", i, expected[i], requests[i])
		}
	}
}

func TestReadRequestsAliases(t *testing.T) {
	path := writeInput(t, "aliases.CSV", "passenger_id,release_time,from,to\n7,5,2,9\n")
	requests, err := ReadRequests(path)
	if err != nil {
		t.Fatalf("Expected aliased header to parse, got %v", err)
	}
	if len(requests) != 1 || requests[0] != (liftrequest.Request{ID: 7, Release: 5, Origin: 2, Destination: 9}) {
		t.Errorf("Unexpected requests %v", requests)
	}
}

func TestReadRequestsErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"wrong extension", "passengers.txt", "id,time,origin,destination\n1,0,1,2\n", ErrWrongExtension},
		{"empty file", "empty.csv", "", ErrMissingColumn},
		{"missing column", "missing.csv", "id,time,origin\n1,0,1\n", ErrMissingColumn},
		{"not a number", "nan.csv", "id,time,origin,destination\n1,zero,1,2\n", ErrMalformedRow},
		{"short row", "short.csv", "id,time,origin,destination\n1,0,1\n", ErrMalformedRow},
		{"same floor", "troll.csv", "id,time,origin,destination\n1,0,4,4\n", liftrequest.ErrSameFloor},
		{"duplicate id", "dup.csv", "id,time,origin,destination\n1,0,1,2\n1,3,2,1\n", liftrequest.ErrInvalidRequest},
		{"negative release", "neg.csv", "id,time,origin,destination\n1,-4,1,2\n", liftrequest.ErrInvalidRequest},
	}

	for _, tc := range tests {
		path := writeInput(t, tc.file, tc.content)
		if _, err := ReadRequests(path); !errors.Is(err, tc.want) {
			t.Errorf("%s: Expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if _, err := ReadRequests(filepath.Join(t.TempDir(), "absent.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error for a missing file, got %v", err)
	}
}

func TestLogPaths(t *testing.T) {
	input := filepath.Join("data", "morning.csv")
	if LogPath(input) != filepath.Join("data", "morning_log.csv") {
		t.Errorf("Unexpected log path %s", LogPath(input))
	}
	if PolicyLogPath(input, liftconsts.POLICY_DIRECTIONAL) != filepath.Join("data", "morning_directional_log.csv") {
		t.Errorf("Unexpected policy log path %s", PolicyLogPath(input, liftconsts.POLICY_DIRECTIONAL))
	}
}

func TestWriteLog(t *testing.T) {
	log := liftlog.NewLog(liftlog.Directional)
	_ = log.Append(liftlog.Entry{Time: 0, Floor: 1, Kind: liftlog.StateChange, State: "MovingUp", Direction: liftconsts.Up})
	_ = log.Append(liftlog.Entry{Time: 10, Floor: 2, Kind: liftlog.FloorArrival, State: "MovingUp", Direction: liftconsts.Up, Passengers: []int{1, 3}})

	dir := t.TempDir()
	path := filepath.Join(dir, "run_log.csv")
	if err := WriteLog(path, log); err != nil {
		t.Fatalf("Expected log to be written, got %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected log file to exist, got %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Expected log to be valid CSV, got %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != "time,floor,event,state,direction,passengers" {
		t.Errorf("Unexpected header %v", records[0])
	}
	if records[2][5] != "1,3" || records[2][4] != "Up" {
		t.Errorf("Unexpected row %v", records[2])
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only the log file in %s, found %d entries", dir, len(entries))
	}
}

func TestWriteLogFailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "run_log.csv")
	if err := WriteLog(path, liftlog.NewLog(liftlog.Targeted)); err == nil {
		t.Errorf("Expected writing into a missing directory to fail")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no log file after a failed write, got %v", err)
	}
}
