// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями и их напоминаниями. Предоставляет методы
// создания, чтения, обновления и удаления записей. Все операции
// с напоминаниями ограничены владельцем: запрос без совпадения
// владельца неотличим от запроса несуществующей записи.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/reminder-planner/internal/models"
)

// Ошибки уровня хранилища, по которым сервисный слой выбирает HTTP-статус.
var (
	// ErrUserNotFound возвращается, если пользователь отсутствует в базе.
	ErrUserNotFound = errors.New("user not found")
	// ErrReminderNotFound возвращается, если напоминание отсутствует
	// или принадлежит другому пользователю.
	ErrReminderNotFound = errors.New("reminder not found")
	// ErrUsernameTaken возвращается при нарушении уникальности username.
	ErrUsernameTaken = errors.New("username already taken")
)

// Код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolationCode = "23505"

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и напоминаниями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// ===== USER METHODS =====

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
// При коллизии имени пользователя возвращает ErrUsernameTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (username, email, password_hash, age, bio, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Age, user.Bio,
		user.IsActive).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return "", fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, age, bio, is_active, created_at
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	var age sql.NullInt64
	var bio sql.NullString
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash,
		&age, &bio, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if age.Valid {
		v := int(age.Int64)
		u.Age = &v
	}
	if bio.Valid {
		u.Bio = &bio.String
	}
	return u, nil
}

// UpdateUserProfile применяет частичное обновление профиля: поля со значением
// nil остаются нетронутыми. Возвращает обновлённого пользователя.
func (s *Storage) UpdateUserProfile(ctx context.Context, username string, upd models.DummyProfileUpdate) (*models.User, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET email = COALESCE($1, email),
			      age = COALESCE($2, age),
			      bio = COALESCE($3, bio)
			  WHERE username = $4
			  RETURNING uid, username, email, password_hash, age, bio, is_active, created_at`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, upd.Email, upd.Age, upd.Bio, username)

	var age sql.NullInt64
	var bio sql.NullString
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash,
		&age, &bio, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if age.Valid {
		v := int(age.Int64)
		u.Age = &v
	}
	if bio.Valid {
		u.Bio = &bio.String
	}
	return u, nil
}

// DeleteUser удаляет пользователя и все его напоминания в одной транзакции.
// Напоминания удаляются явно, без опоры на каскад внешнего ключа.
func (s *Storage) DeleteUser(ctx context.Context, username string) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM reminders WHERE username = $1`, username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ===== REMINDER METHODS =====

// reminderColumns перечисляет колонки, возвращаемые во всех выборках напоминаний.
const reminderColumns = `id, username, remind_date, remind_time, title, message,
			      reminder_method, email, phone_number, created_at, updated_at`

func scanReminder(row interface{ Scan(...any) error }) (*models.Reminder, error) {
	var item models.Reminder
	var email, phoneNumber sql.NullString
	if err := row.Scan(&item.ID, &item.Username, &item.Date, &item.Time, &item.Title,
		&item.Message, &item.Method, &email, &phoneNumber,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		item.Email = &email.String
	}
	if phoneNumber.Valid {
		item.PhoneNumber = &phoneNumber.String
	}
	return &item, nil
}

// CreateReminder вставляет новую запись напоминания и возвращает её
// вместе с назначенными сервером id и временными метками.
func (s *Storage) CreateReminder(ctx context.Context, rem models.Reminder) (*models.Reminder, error) {
	const op = "storage.CreateReminder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reminders (username, remind_date, remind_time, title, message,
			      reminder_method, email, phone_number)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + reminderColumns
	row := s.DB.QueryRowContext(ctx, query,
		rem.Username, rem.Date, rem.Time, rem.Title, rem.Message,
		rem.Method, rem.Email, rem.PhoneNumber)
	result, err := scanReminder(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadReminder возвращает напоминание по ID, ограниченное владельцем.
// Чужая запись неотличима от несуществующей: в обоих случаях ErrReminderNotFound.
func (s *Storage) ReadReminder(ctx context.Context, id int, username string) (*models.Reminder, error) {
	const op = "storage.ReadReminder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + reminderColumns + `
			  FROM reminders
			  WHERE id = $1 AND username = $2`
	row := s.DB.QueryRowContext(ctx, query, id, username)
	result, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrReminderNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateReminder перезаписывает напоминание уже слитыми значениями
// и возвращает обновлённую запись. Условие WHERE включает владельца.
func (s *Storage) UpdateReminder(ctx context.Context, rem models.Reminder) (*models.Reminder, error) {
	const op = "storage.UpdateReminder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reminders
			  SET remind_date = $1, remind_time = $2, title = $3, message = $4,
			      reminder_method = $5, email = $6, phone_number = $7, updated_at = now()
			  WHERE id = $8 AND username = $9
			  RETURNING ` + reminderColumns
	row := s.DB.QueryRowContext(ctx, query,
		rem.Date, rem.Time, rem.Title, rem.Message,
		rem.Method, rem.Email, rem.PhoneNumber, rem.ID, rem.Username)
	result, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrReminderNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveReminder удаляет напоминание по ID владельца и возвращает количество
// удалённых строк. Ноль строк означает, что записи нет или она чужая.
func (s *Storage) RemoveReminder(ctx context.Context, id int, username string) (int, error) {
	const op = "storage.RemoveReminder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM reminders WHERE id = $1 AND username = $2`
	result, err := s.DB.ExecContext(ctx, query, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListReminders возвращает список напоминаний пользователя с пагинацией,
// в порядке вставки.
func (s *Storage) ListReminders(ctx context.Context, username string, limit, offset int) ([]*models.Reminder, error) {
	const op = "storage.ListReminders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + reminderColumns + `
			  FROM reminders
			  WHERE username = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Reminder
	for rows.Next() {
		item, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
