package crops

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/ml"
)

func testRecord(t *testing.T) Recommendation {
	t.Helper()
	return Recommendation{
		ID:     "rec-1",
		UserID: "user-1",
		Input: InputParameters{
			SoilData:    SoilConditions{Nitrogen: 90, PH: 6.2},
			WeatherData: WeatherConditions{Temperature: 28, Humidity: 75, Rainfall: 900},
		},
		Results: []RecommendationResult{
			{CropName: "rice", Variety: "IR64", ConfidenceScore: 0.9, RiskFactors: []RiskFactor{}},
		},
		Source:    SourceModel,
		ModelInfo: &ml.ModelInfo{Version: "2.0", Algorithm: "Random Forest", Accuracy: 0.93},
		Status:    StatusCompleted,
		CreatedAt: time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	record := testRecord(t)

	mock.ExpectExec("INSERT INTO crop_recommendations").
		WithArgs(
			record.ID,
			record.UserID,
			sqlmock.AnyArg(), // input_parameters
			sqlmock.AnyArg(), // results
			record.Source,
			sqlmock.AnyArg(), // model_info
			nil,              // warning
			record.Status,
			record.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateStoresFallbackWarning(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	record := testRecord(t)
	record.Source = SourceFallback
	record.ModelInfo = nil
	record.Warning = "AI service temporarily unavailable, using rule-based recommendations"

	mock.ExpectExec("INSERT INTO crop_recommendations").
		WithArgs(
			record.ID,
			record.UserID,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			record.Source,
			nil,
			record.Warning,
			record.Status,
			record.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	record := testRecord(t)

	inputJSON, _ := json.Marshal(record.Input)
	resultsJSON, _ := json.Marshal(record.Results)
	modelInfoJSON, _ := json.Marshal(record.ModelInfo)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "input_parameters", "results", "source", "model_info", "warning", "status", "created_at",
	}).AddRow(
		record.ID, record.UserID, inputJSON, resultsJSON, record.Source, modelInfoJSON, nil, record.Status, record.CreatedAt,
	)
	mock.ExpectQuery("SELECT (.+) FROM crop_recommendations").
		WithArgs(record.ID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != record.ID || got.UserID != record.UserID {
		t.Fatalf("expected record %q for %q, got %+v", record.ID, record.UserID, got)
	}
	if got.ModelInfo == nil || got.ModelInfo.Version != "2.0" {
		t.Fatalf("expected model info restored, got %+v", got.ModelInfo)
	}
	if len(got.Results) != 1 || got.Results[0].CropName != "rice" {
		t.Fatalf("expected results restored, got %+v", got.Results)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM crop_recommendations").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "input_parameters", "results", "source", "model_info", "warning", "status", "created_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	record := testRecord(t)

	inputJSON, _ := json.Marshal(record.Input)
	resultsJSON, _ := json.Marshal(record.Results)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "input_parameters", "results", "source", "model_info", "warning", "status", "created_at",
	}).AddRow(
		record.ID, record.UserID, inputJSON, resultsJSON, SourceFallback, nil, "unavailable", record.Status, record.CreatedAt,
	)
	mock.ExpectQuery("SELECT (.+) FROM crop_recommendations").
		WithArgs(record.UserID, 20, 0).
		WillReturnRows(rows)

	records, err := repo.ListByUser(context.Background(), record.UserID, 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Warning != "unavailable" {
		t.Fatalf("expected warning restored, got %q", records[0].Warning)
	}
	if records[0].ModelInfo != nil {
		t.Fatalf("expected nil model info, got %+v", records[0].ModelInfo)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
