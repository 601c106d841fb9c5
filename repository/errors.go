package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Indie-Creator-Community/reward-system/service"
)

// classify maps raw pgx errors onto the closed service error set. This is the
// single point where driver errors are inspected; everything above the
// repository layer switches on service sentinels only.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "dedup_key") {
				return fmt.Errorf("%s: %w", op, service.ErrDuplicateTransfer)
			}
			return fmt.Errorf("%s: %w", op, service.ErrDuplicateIdentity)
		case "23514": // check_violation, coins >= 0
			return fmt.Errorf("%s: %w", op, service.ErrInsufficientBalance)
		}
		// Class 08: connection exception. Class 57: operator intervention
		// (shutdown). Both are transient from the caller's perspective.
		if strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57") {
			return fmt.Errorf("%s: %w", op, service.ErrUnavailable)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, service.ErrUnavailable)
	}

	return fmt.Errorf("%s: %w", op, err)
}
