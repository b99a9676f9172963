package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/tradelog/internal/model"
	"github.com/hitoshi/tradelog/internal/repository"
)

// MetricsRecorder は認証系メトリクスの記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordRegistration()
	RecordLogin(result string)
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	BcryptCost int // パスワードハッシュのコストパラメータ
}

// Service は登録・ログインのビジネスロジックを提供する。
// サーバー側にセッション状態を持たず、ログイン成功の証明は
// クライアントが保持するトークンのみである。
type Service struct {
	userRepo repository.UserRepository
	issuer   *TokenIssuer
	metrics  MetricsRecorder
	config   ServiceConfig
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(
	userRepo repository.UserRepository,
	issuer *TokenIssuer,
	metrics MetricsRecorder,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo: userRepo,
		issuer:   issuer,
		metrics:  metrics,
		config:   config,
	}
}

// Register は新規ユーザーを作成する。登録はログインを兼ねない。
// ユーザー名が既に存在する場合はUSERNAME_TAKENエラーを返し、状態を変更しない。
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, model.NewValidationError("ユーザー名を入力してください。")
	}
	if password == "" {
		return nil, model.NewValidationError("パスワードを入力してください。")
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 一意性の最終判定はストレージの一意制約に委ねる。
	// 同名の同時登録はここで敗者にErrDuplicateUsernameが返る。
	user, err := s.userRepo.Create(ctx, username, hash)
	if err != nil {
		if err == repository.ErrDuplicateUsername {
			return nil, model.NewUsernameTakenError(username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordRegistration()
	}
	slog.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login は資格情報を検証し、セッショントークンを発行する。
// ユーザー名の列挙を防ぐため、未登録ユーザーとパスワード不一致は
// 呼び出し側から区別できない同一のエラーを返す。
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		if s.metrics != nil {
			s.metrics.RecordLogin("failure")
		}
		return "", model.NewInvalidCredentialsError()
	}

	token, err := s.issuer.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordLogin("success")
	}
	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}
