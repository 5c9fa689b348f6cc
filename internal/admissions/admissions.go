package admissions

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/Spok95/school-admin/internal/db"
	"github.com/Spok95/school-admin/internal/models"
)

// Admission/job-application completion is the one place new numeric ids are
// minted: the student (or teacher) row and its portal account share the same
// id from the sequence, which is what lets the rest of the system join
// accounts to people by plain integers.

type Admission struct {
	Name           string
	GuardianName   string
	GuardianPhone  string
	AdmissionClass string
	Username       string
	Password       string
}

type JobApplication struct {
	Name          string
	Phone         string
	Qualification string
	Subject       string
	Username      string
	Password      string
}

// CompleteAdmission approves a pending admission: allocates the shared id,
// creates the student as approved and provisions the portal account.
func CompleteAdmission(ctx context.Context, database *sql.DB, adm Admission) (*models.Student, error) {
	status, err := models.StudentPending.Transition(models.StudentApproved)
	if err != nil {
		return nil, err
	}

	id, err := db.NextID(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("allocate id: %w", err)
	}

	student := models.Student{
		ID:             id,
		Name:           adm.Name,
		GuardianName:   adm.GuardianName,
		GuardianPhone:  adm.GuardianPhone,
		AdmissionClass: adm.AdmissionClass,
		CurrentClass:   adm.AdmissionClass,
		Status:         status,
	}
	if err := db.CreateStudent(ctx, database, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	account := models.Account{
		ID:        models.NumericAccountID(id),
		Username:  username(adm.Username, id),
		Password:  HashPassword(adm.Password),
		Role:      models.RoleStudent,
		StudentID: &id,
	}
	if err := db.CreateAccount(ctx, database, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &student, nil
}

// CompleteJobApplication approves a teacher application the same way.
func CompleteJobApplication(ctx context.Context, database *sql.DB, app JobApplication) (*models.Teacher, error) {
	status, err := models.TeacherPending.Transition(models.TeacherApproved)
	if err != nil {
		return nil, err
	}

	id, err := db.NextID(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("allocate id: %w", err)
	}

	teacher := models.Teacher{
		ID:            id,
		Name:          app.Name,
		Phone:         app.Phone,
		Qualification: app.Qualification,
		Subject:       app.Subject,
		Status:        status,
	}
	if err := db.CreateTeacher(ctx, database, teacher); err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}

	account := models.Account{
		ID:        models.NumericAccountID(id),
		Username:  username(app.Username, id),
		Password:  HashPassword(app.Password),
		Role:      models.RoleTeacher,
		TeacherID: &id,
	}
	if err := db.CreateAccount(ctx, database, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &teacher, nil
}

// HashPassword stores sha256 hex; legacy plaintext rows are told apart by
// length (64 hex chars) at login, which lives outside this service.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func username(requested string, id int64) string {
	if requested != "" {
		return requested
	}
	return "user" + strconv.FormatInt(id, 10)
}
