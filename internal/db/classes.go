package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/school-admin/internal/models"
)

// ListClasses loads every class with its subject list and timetable, the shape
// the exam scheduler works from.
func ListClasses(ctx context.Context, database *sql.DB) ([]models.Class, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, name, section, class_teacher_id FROM classes ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var classes []models.Class
	byID := map[int64]int{}
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Section, &c.ClassTeacherID); err != nil {
			return nil, err
		}
		byID[c.ID] = len(classes)
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subjRows, err := database.QueryContext(ctx, `
		SELECT class_id, name FROM class_subjects ORDER BY class_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = subjRows.Close() }()
	for subjRows.Next() {
		var classID int64
		var name string
		if err := subjRows.Scan(&classID, &name); err != nil {
			return nil, err
		}
		if i, ok := byID[classID]; ok {
			classes[i].Subjects = append(classes[i].Subjects, name)
		}
	}
	if err := subjRows.Err(); err != nil {
		return nil, err
	}

	slotRows, err := database.QueryContext(ctx, `
		SELECT class_id, day, start_time, end_time, subject, teacher_name, room
		FROM timetable_slots ORDER BY class_id, id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = slotRows.Close() }()
	for slotRows.Next() {
		var classID int64
		var slot models.TimetableSlot
		if err := slotRows.Scan(&classID, &slot.Day, &slot.StartTime, &slot.EndTime,
			&slot.Subject, &slot.TeacherName, &slot.Room); err != nil {
			return nil, err
		}
		if i, ok := byID[classID]; ok {
			classes[i].Timetable = append(classes[i].Timetable, slot)
		}
	}
	return classes, slotRows.Err()
}

func GetClassByID(ctx context.Context, database *sql.DB, id int64) (*models.Class, error) {
	row := database.QueryRowContext(ctx, `SELECT id, name, section, class_teacher_id FROM classes WHERE id = $1`, id)
	var c models.Class
	if err := row.Scan(&c.ID, &c.Name, &c.Section, &c.ClassTeacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
