package liftmetadata

import (
	"encoding/json"

	"github.com/Milford1337/Lift-Simulation/internal/logger"
)

var Log = logger.GetLogger()

type RunMetaData struct {
	SoftwareVersion string `json:"software_version"`
	Identifier      string `json:"identifier"`
	InputPath       string `json:"input_path"`
	Policy          string `json:"policy"`
	Capacity        int    `json:"capacity"`
	TickLimit       int    `json:"tick_limit"`
}

func (runMetaData *RunMetaData) String() string {
	jsonData, err := json.Marshal(runMetaData)

	if err != nil {
		Log.Error().Msg("Error Serialising RunMetaData Object to JSON")
		return ""
	}
	return string(jsonData)
}
