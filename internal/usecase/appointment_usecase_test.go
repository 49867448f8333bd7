package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/repository"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAppointmentUsecase(t *testing.T) (AppointmentUsecase, *gorm.DB) {
	db := setupTestDB(t)
	log := testLogger()
	auditSvc := service.NewAuditService(db, log, repository.NewAuditLogRepository())
	uc := NewAppointmentUsecase(db, log,
		repository.NewAppointmentRepository(),
		repository.NewPatientRepository(),
		repository.NewStaffProfileRepository(),
		auditSvc)
	return uc, db
}

func seedPatient(t *testing.T, db *gorm.DB, mrn string) *entity.Patient {
	t.Helper()
	patient := &entity.Patient{
		MedicalRecordNumber: mrn,
		FullName:            "Jane Roe",
		DateOfBirth:         time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Gender:              "F",
	}
	require.NoError(t, db.Create(patient).Error)
	return patient
}

func seedStaff(t *testing.T, db *gorm.DB, employeeNumber string) *entity.StaffProfile {
	t.Helper()
	role := &entity.Role{Name: "DOCTOR_" + employeeNumber}
	require.NoError(t, db.Create(role).Error)
	user := &entity.User{
		RoleID:   role.ID,
		Email:    employeeNumber + "@clinic.test",
		Password: "hash",
		FullName: "Dr. Smith",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	staff := &entity.StaffProfile{
		UserID:         user.ID,
		EmployeeNumber: employeeNumber,
		Position:       "physician",
		HireDate:       time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func TestCreateAppointment(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	patient := seedPatient(t, db, "MRN-1001")
	staff := seedStaff(t, db, "EMP-001")

	scheduledAt := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	resp, err := uc.Create(context.Background(), uuid.New(), &dto.CreateAppointmentRequest{
		PatientID:   patient.ID,
		StaffID:     staff.UserID,
		ScheduledAt: scheduledAt,
		Reason:      "annual checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentStatusPending, resp.Status)
	assert.Equal(t, "Jane Roe", resp.PatientName)
	assert.Equal(t, "Dr. Smith", resp.StaffName)
	// Duration falls back to the default slot length when omitted.
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.True(t, resp.ScheduledAt.Equal(scheduledAt))
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	staff := seedStaff(t, db, "EMP-002")

	_, err := uc.Create(context.Background(), uuid.New(), &dto.CreateAppointmentRequest{
		PatientID:   uuid.New(),
		StaffID:     staff.UserID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrAppointmentPatient)
}

func TestCreateAppointmentUnknownStaff(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	patient := seedPatient(t, db, "MRN-1002")

	_, err := uc.Create(context.Background(), uuid.New(), &dto.CreateAppointmentRequest{
		PatientID:   patient.ID,
		StaffID:     uuid.New(),
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrAppointmentStaff)
}

func TestUpdateAppointmentStatusFreeForm(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	patient := seedPatient(t, db, "MRN-1003")
	staff := seedStaff(t, db, "EMP-003")
	ctx := context.Background()

	created, err := uc.Create(ctx, uuid.New(), &dto.CreateAppointmentRequest{
		PatientID:   patient.ID,
		StaffID:     staff.UserID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	// Any string is accepted, including backwards transitions.
	for _, status := range []string{entity.AppointmentStatusConfirmed, "no_show", entity.AppointmentStatusPending} {
		updated, err := uc.Update(ctx, uuid.New(), created.ID, &dto.UpdateAppointmentRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdateAppointmentWritesAuditTrail(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	patient := seedPatient(t, db, "MRN-1004")
	staff := seedStaff(t, db, "EMP-004")
	ctx := context.Background()

	created, err := uc.Create(ctx, uuid.New(), &dto.CreateAppointmentRequest{
		PatientID:   patient.ID,
		StaffID:     staff.UserID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, uuid.New(), created.ID, &dto.UpdateAppointmentRequest{Notes: "rescheduled by phone"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&entity.AuditLog{}).
		Where("action = ?", entity.AuditActionAppointmentUpdate).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetAllAppointmentsFilterByStatus(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	patient := seedPatient(t, db, "MRN-1005")
	staff := seedStaff(t, db, "EMP-005")
	ctx := context.Background()

	first, err := uc.Create(ctx, uuid.New(), &dto.CreateAppointmentRequest{
		PatientID:   patient.ID,
		StaffID:     staff.UserID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, uuid.New(), &dto.CreateAppointmentRequest{
		PatientID:   patient.ID,
		StaffID:     staff.UserID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, uuid.New(), first.ID, &dto.UpdateAppointmentRequest{
		Status: entity.AppointmentStatusConfirmed,
	})
	require.NoError(t, err)

	list, err := uc.GetAll(ctx, &entity.AppointmentFilter{Status: entity.AppointmentStatusConfirmed}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
	require.Len(t, list.Appointments, 1)
	assert.Equal(t, first.ID, list.Appointments[0].ID)
}

func TestDeleteAppointment(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	patient := seedPatient(t, db, "MRN-1006")
	staff := seedStaff(t, db, "EMP-006")
	ctx := context.Background()

	created, err := uc.Create(ctx, uuid.New(), &dto.CreateAppointmentRequest{
		PatientID:   patient.ID,
		StaffID:     staff.UserID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, uuid.New(), created.ID))

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
