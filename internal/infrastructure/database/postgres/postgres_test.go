package postgres

import (
	"io"
	"log/slog"
)

const pgxmockExpectationsNotMetMsg = "pgxmock expectations not met"

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))
