package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

const (
	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
)

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается, когда не удалось зафиксировать транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure возвращается, когда PostgreSQL отменил транзакцию
	// из-за конфликта сериализации или дедлока. Повтор остается на стороне вызывающего.
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Manager менеджер транзакций. Транзакция передается репозиториям через контекст.
type Manager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *Manager {
	return &Manager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("%w: %w", ErrCommit, err))
	}

	return nil
}

// classify помечает ошибки сериализации, чтобы use case мог вернуть конфликт
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected {
			return errors.Mark(err, ErrSerializationFailure)
		}
	}
	return err
}
