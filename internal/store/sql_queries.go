package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-erp-auth/models"
)

var (
	userColumns = []string{
		"id", "name", "email", "password_hash", "verified", "role", "must_change_password", "created_at",
	}
	otpColumns = []string{
		"id", "user_id", "code", "attempts", "max_attempts", "expires_at", "created_at",
	}
	auditColumns = []string{
		"id", "user_id", "email", "action", "ip", "user_agent", "timestamp",
	}
	employeeColumns = []string{
		"id", "user_id", "name", "email", "phone", "employee_type", "department",
		"position", "hire_date", "status", "must_change_password", "created_at",
	}
	visitColumns = []string{
		"id", "path", "ip", "user_agent", "timestamp",
	}
)

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ── users ────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(b sq.StatementBuilderType, u models.User) (string, []any, error) {
	return b.Insert(models.User{}.TableName()).
		Columns(userColumns...).
		Values(u.ID, u.Name, u.Email, u.PasswordHash, u.Verified, string(u.Role), u.MustChangePassword, u.CreatedAt).
		ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		Limit(1).
		ToSql()
}

func buildUpdateUserQuery(b sq.StatementBuilderType, u models.User) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		Set("name", u.Name).
		Set("password_hash", u.PasswordHash).
		Set("verified", u.Verified).
		Set("role", string(u.Role)).
		Set("must_change_password", u.MustChangePassword).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u    models.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Verified, &role, &u.MustChangePassword, &u.CreatedAt); err != nil {
		return models.User{}, err
	}
	u.Role = models.Role(role)
	return u, nil
}

// ── otp ──────────────────────────────────────────────────────────────────────

func buildInsertOTPQuery(b sq.StatementBuilderType, o models.OTP) (string, []any, error) {
	return b.Insert(models.OTP{}.TableName()).
		Columns(otpColumns...).
		Values(o.ID, o.UserID, o.Code, o.Attempts, o.MaxAttempts, o.ExpiresAt, o.CreatedAt).
		ToSql()
}

// buildSelectLatestOTPQuery orders by created_at and then by id: ids are
// UUIDv7, so they break ties between codes issued within the same instant.
func buildSelectLatestOTPQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(otpColumns...).
		From(models.OTP{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
}

func buildDeleteExpiredOTPsQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return b.Delete(models.OTP{}.TableName()).
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
}

func scanOTP(row rowScanner) (models.OTP, error) {
	var o models.OTP
	if err := row.Scan(&o.ID, &o.UserID, &o.Code, &o.Attempts, &o.MaxAttempts, &o.ExpiresAt, &o.CreatedAt); err != nil {
		return models.OTP{}, err
	}
	return o, nil
}

// ── audit ────────────────────────────────────────────────────────────────────

func buildInsertAuditQuery(b sq.StatementBuilderType, e models.AuditEvent) (string, []any, error) {
	var userID any
	if e.UserID != nil {
		userID = *e.UserID
	}

	return b.Insert(models.AuditEvent{}.TableName()).
		Columns(auditColumns...).
		Values(e.ID, userID, e.Email, string(e.Action), e.IP, e.UserAgent, e.Timestamp).
		ToSql()
}

func buildListAuditQuery(b sq.StatementBuilderType, limit int) (string, []any, error) {
	return b.Select(auditColumns...).
		From(models.AuditEvent{}.TableName()).
		OrderBy("timestamp DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
}

// buildTrimAuditQuery deletes every event outside the newest keep.
func buildTrimAuditQuery(b sq.StatementBuilderType, keep int) (string, []any, error) {
	return b.Delete(models.AuditEvent{}.TableName()).
		Where(sq.Expr("id NOT IN (SELECT id FROM audit_logs ORDER BY timestamp DESC, id DESC LIMIT ?)", keep)).
		ToSql()
}

func scanAuditEvent(row rowScanner) (models.AuditEvent, error) {
	var (
		e      models.AuditEvent
		userID sql.NullString
		action string
	)
	if err := row.Scan(&e.ID, &userID, &e.Email, &action, &e.IP, &e.UserAgent, &e.Timestamp); err != nil {
		return models.AuditEvent{}, err
	}
	if userID.Valid {
		e.UserID = &userID.String
	}
	e.Action = models.AuditAction(action)
	return e, nil
}

// ── employees ────────────────────────────────────────────────────────────────

func buildInsertEmployeeQuery(b sq.StatementBuilderType, e models.Employee) (string, []any, error) {
	return b.Insert(models.Employee{}.TableName()).
		Columns(employeeColumns...).
		Values(e.ID, e.UserID, e.Name, e.Email, e.Phone, e.EmployeeType, e.Department,
			e.Position, e.HireDate, string(e.Status), e.MustChangePassword, e.CreatedAt).
		ToSql()
}

func buildSelectEmployeesQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	query := b.Select(employeeColumns...).
		From(models.Employee{}.TableName())
	if where != nil {
		query = query.Where(where).Limit(1)
	} else {
		query = query.OrderBy("created_at DESC", "id DESC")
	}
	return query.ToSql()
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var (
		e      models.Employee
		userID sql.NullString
		status string
	)
	if err := row.Scan(&e.ID, &userID, &e.Name, &e.Email, &e.Phone, &e.EmployeeType, &e.Department,
		&e.Position, &e.HireDate, &status, &e.MustChangePassword, &e.CreatedAt); err != nil {
		return models.Employee{}, err
	}
	e.UserID = userID.String
	e.Status = models.EmployeeStatus(status)
	return e, nil
}

// ── analytics ────────────────────────────────────────────────────────────────

func buildInsertVisitQuery(b sq.StatementBuilderType, v models.Visit) (string, []any, error) {
	return b.Insert(models.Visit{}.TableName()).
		Columns(visitColumns...).
		Values(v.ID, v.Path, v.IP, v.UserAgent, v.Timestamp).
		ToSql()
}

func buildVisitTimestampsQuery(b sq.StatementBuilderType, since time.Time) (string, []any, error) {
	return b.Select("timestamp").
		From(models.Visit{}.TableName()).
		Where(sq.GtOrEq{"timestamp": since}).
		OrderBy("timestamp ASC").
		ToSql()
}

// ── helpers ──────────────────────────────────────────────────────────────────

func buildCountQuery(b sq.StatementBuilderType, table string) (string, []any, error) {
	return b.Select("COUNT(*)").From(table).ToSql()
}

// execAffected runs a DML statement and reports the number of affected rows.
func execAffected(ctx context.Context, q querier, query string, args []any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func queryCount(ctx context.Context, q querier, query string, args []any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
