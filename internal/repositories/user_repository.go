package repositories

import (
	"database/sql"
	"time"

	"afrisoutien/internal/authz"
	"afrisoutien/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id int) error
	List(limit, offset int) ([]*models.User, error)
	Count() (int, error)
	CountByRole(role authz.Role) (int, error)
	UpdateRole(userID int, role authz.Role) error
	UpdatePassword(userID int, passwordHash string) error

	// verification: indexed token lookups, one outstanding token per user
	SetVerificationToken(userID int, token string) error
	GetByVerificationToken(token string) (*models.User, error)
	MarkVerified(userID int) error

	// password reset
	SetResetToken(userID int, token string, expiresAt time.Time) error
	GetByResetToken(token string) (*models.User, error)
	ClearResetToken(userID int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, name, email, password_hash, role, is_verified, created_at,
	email_verification_token, password_reset_token, password_reset_expires_at
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		role      string
		verifTok  sql.NullString
		resetTok  sql.NullString
		resetExp  sql.NullTime
		createdAt sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.IsVerified, &createdAt,
		&verifTok, &resetTok, &resetExp,
	)
	if err != nil {
		return nil, err
	}
	u.Role = authz.Role(role)
	if createdAt.Valid {
		u.CreatedAt = createdAt.Time
	}
	if verifTok.Valid {
		s := verifTok.String
		u.EmailVerificationToken = &s
	}
	if resetTok.Valid {
		s := resetTok.String
		u.PasswordResetToken = &s
	}
	if resetExp.Valid {
		t := resetExp.Time
		u.PasswordResetExpiresAt = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, password_hash, role, is_verified, email_verification_token, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q,
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.IsVerified,
		user.EmailVerificationToken,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) GetByVerificationToken(token string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email_verification_token = $1`, token))
}

func (r *userRepository) GetByResetToken(token string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE password_reset_token = $1`, token))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET name=$1, email=$2, role=$3, is_verified=$4
		WHERE id=$5
	`
	_, err := r.DB.Exec(q, user.Name, user.Email, string(user.Role), user.IsVerified, user.ID)
	return err
}

func (r *userRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `
		SELECT id, name, email, role, is_verified, created_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &u.IsVerified, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = authz.Role(role)
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) Count() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c)
	return c, err
}

func (r *userRepository) CountByRole(role authz.Role) (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).Scan(&c)
	return c, err
}

func (r *userRepository) UpdateRole(userID int, role authz.Role) error {
	_, err := r.DB.Exec(`UPDATE users SET role=$1 WHERE id=$2`, string(role), userID)
	return err
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, userID)
	return err
}

func (r *userRepository) SetVerificationToken(userID int, token string) error {
	_, err := r.DB.Exec(`UPDATE users SET email_verification_token=$1 WHERE id=$2`, token, userID)
	return err
}

func (r *userRepository) MarkVerified(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET is_verified=TRUE, email_verification_token=NULL
		WHERE id=$1
	`, userID)
	return err
}

func (r *userRepository) SetResetToken(userID int, token string, expiresAt time.Time) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_reset_token=$1, password_reset_expires_at=$2
		WHERE id=$3
	`, token, expiresAt, userID)
	return err
}

func (r *userRepository) ClearResetToken(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_reset_token=NULL, password_reset_expires_at=NULL
		WHERE id=$1
	`, userID)
	return err
}
