package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/common"
	"github.com/NishantSagar12345/NextCellCRM/internal/config"
	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type AppointmentRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	tenantID  uuid.UUID
	patientID uuid.UUID
	slot      time.Time
	context   context.Context
}

func (suite *AppointmentRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.tenantID = uuid.New()
	suite.patientID = uuid.New()
	suite.slot = time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC)
	suite.context = context.Background()
}

func (suite *AppointmentRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestAppointmentRepoTestSuite(t *testing.T) {
	suite.Run(t, new(AppointmentRepoTestSuite))
}

func (suite *AppointmentRepoTestSuite) input() *models.AppointmentInput {
	return &models.AppointmentInput{
		PatientID:        suite.patientID,
		PractitionerName: "Dr. Smith",
		TreatmentType:    models.DefaultTreatmentType,
		AppointmentTime:  suite.slot,
		Status:           models.DefaultAppointmentStatus,
	}
}

func (suite *AppointmentRepoTestSuite) expectInsert() {
	suite.mock.ExpectQuery(`INSERT INTO appointments \(id, tenant_id, patient_id, practitioner_name, treatment_type, appointment_time, status, created_at\)`).
		WithArgs(pgxmock.AnyArg(), suite.tenantID, suite.patientID, "Dr. Smith", "Consultation", suite.slot, "Scheduled").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))
}

func (suite *AppointmentRepoTestSuite) TestCreate_StrictWithKnownPatient() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(contactExistsSQL)).
		WithArgs(suite.tenantID, suite.patientID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.expectInsert()
	suite.mock.ExpectCommit()

	repo := NewAppointmentRepo(suite.mock, NewLinkage(config.LinkagePolicyStrict, zap.NewNop()))
	appointment, err := repo.Create(suite.context, suite.tenantID, suite.input())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.patientID, appointment.PatientID)
	assert.Equal(suite.T(), suite.tenantID, appointment.TenantID)
	assert.Equal(suite.T(), suite.slot, appointment.AppointmentTime)
}

func (suite *AppointmentRepoTestSuite) TestCreate_StrictUnknownPatient() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(contactExistsSQL)).
		WithArgs(suite.tenantID, suite.patientID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectRollback()

	repo := NewAppointmentRepo(suite.mock, NewLinkage(config.LinkagePolicyStrict, zap.NewNop()))
	_, err := repo.Create(suite.context, suite.tenantID, suite.input())
	require.Error(suite.T(), err)
	assert.True(suite.T(), common.IsValidationError(err))
	assert.Contains(suite.T(), err.Error(), "patient_id")
}

func (suite *AppointmentRepoTestSuite) TestCreate_InsertFailureRollsBack() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(contactExistsSQL)).
		WithArgs(suite.tenantID, suite.patientID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.mock.ExpectQuery(`INSERT INTO appointments`).
		WithArgs(pgxmock.AnyArg(), suite.tenantID, suite.patientID, "Dr. Smith", "Consultation", suite.slot, "Scheduled").
		WillReturnError(errors.New("disk full"))
	suite.mock.ExpectRollback()

	repo := NewAppointmentRepo(suite.mock, NewLinkage(config.LinkagePolicyWarn, zap.NewNop()))
	_, err := repo.Create(suite.context, suite.tenantID, suite.input())
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "create appointment")
}

func (suite *AppointmentRepoTestSuite) TestCreate_BeginFailure() {
	suite.mock.ExpectBegin().WillReturnError(errors.New("pool closed"))

	repo := NewAppointmentRepo(suite.mock, NewLinkage(config.LinkagePolicyWarn, zap.NewNop()))
	_, err := repo.Create(suite.context, suite.tenantID, suite.input())
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "begin appointment")
}

func (suite *AppointmentRepoTestSuite) TestCreate_OffPolicySingleInsert() {
	suite.expectInsert()

	repo := NewAppointmentRepo(suite.mock, NewLinkage(config.LinkagePolicyOff, zap.NewNop()))
	_, err := repo.Create(suite.context, suite.tenantID, suite.input())
	require.NoError(suite.T(), err)
}

func (suite *AppointmentRepoTestSuite) TestList_PatientFilter() {
	rows := pgxmock.NewRows(appointmentColumns).
		AddRow(uuid.New(), suite.tenantID, suite.patientID, "Dr. Smith", "Consultation", suite.slot, "Scheduled", time.Now().UTC())

	suite.mock.ExpectQuery(regexp.QuoteMeta(
		"FROM appointments WHERE tenant_id = $1 AND patient_id = $2 ORDER BY created_at ASC, id ASC",
	)).WithArgs(suite.tenantID, suite.patientID).
		WillReturnRows(rows)

	repo := NewAppointmentRepo(suite.mock, NewLinkage(config.LinkagePolicyWarn, zap.NewNop()))
	patientID := suite.patientID
	appointments, err := repo.List(suite.context, suite.tenantID, models.AppointmentFilter{PatientID: &patientID})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), appointments, 1)
	assert.Equal(suite.T(), "Dr. Smith", appointments[0].PractitionerName)
	assert.Equal(suite.T(), suite.patientID, appointments[0].PatientID)
}
