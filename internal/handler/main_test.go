package handler

import (
	"os"
	"testing"

	"github.com/gymwarriors/fitnesshub-backend/internal/validator"
)

func TestMain(m *testing.M) {
	validator.Setup()
	os.Exit(m.Run())
}
