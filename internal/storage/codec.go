package storage

import (
	"encoding/json"
	"errors"

	"periplus/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// Stamp fills the version fields on a run before it is persisted.
func Stamp(run model.SolveRun) model.SolveRun {
	run.SchemaVersion = CurrentSchemaVersion
	run.CodecVersion = CurrentCodecVersion
	return run
}

func EncodeRun(run model.SolveRun) ([]byte, error) {
	return json.Marshal(run)
}

func DecodeRun(data []byte) (model.SolveRun, error) {
	var run model.SolveRun
	if err := json.Unmarshal(data, &run); err != nil {
		return model.SolveRun{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.SolveRun{}, err
	}
	return run, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
