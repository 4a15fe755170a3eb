package repository

import "context"

// UnitOfWork scopes one handler invocation to one storage transaction.
//
// Do opens the transaction and runs fn inside it: a nil return commits, any
// error (or panic) rolls back, so a partially completed sequence of writes is
// never observed by a concurrent reader. Repositories obtained from the
// UnitOfWork passed to fn are bound to that transaction; acquiring them any
// other way would silently break atomicity.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account store bound to the current
	// transaction. Outside Do there is no transaction and this fails.
	AccountRepository() (AccountRepository, error)
}
