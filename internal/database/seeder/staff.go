package seeder

import (
	"context"

	"careerquest/internal/database"
	ucauth "careerquest/internal/usecase/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// StaffSeeder creates or promotes the staff account. Public registration
// never grants staff rights, so this is the only way to obtain one.
type StaffSeeder struct {
	Email    string
	Password string
}

func (StaffSeeder) Name() string { return "staff" }

func (s StaffSeeder) Run(ctx context.Context, q database.Querier, logger *zap.Logger) (int, error) {
	if s.Email == "" {
		logger.Info("no staff email configured, skipping")
		return 0, nil
	}

	email, ok := ucauth.NormalizeEmail(s.Email)
	if !ok {
		return 0, ucauth.ErrInvalidEmail
	}
	if err := ucauth.CheckPassword(s.Password); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	n, err := q.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, is_staff) VALUES ($1, $2, $3, TRUE)
		 ON CONFLICT (email) DO UPDATE SET is_staff = TRUE, password_hash = EXCLUDED.password_hash, updated_at = now()`,
		uuid.New(), email, string(hash),
	)
	if err != nil {
		return 0, err
	}
	logger.Info("staff account ready", zap.String("email", email))
	return int(n), nil
}
