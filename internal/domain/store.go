package domain

import "context"

// Store hands out the table repositories and scopes them in transactions.
// Repositories obtained from the tx argument of Transaction run inside that
// transaction; the transaction commits when fn returns nil and rolls back
// otherwise.
type Store interface {
	Users() UserRepository
	Statuses() StatusRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
