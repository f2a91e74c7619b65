// Package mocks holds gomock doubles for the engine's collaborator
// interfaces. Regenerate with `go generate ./...`.
package mocks

//go:generate mockgen -destination=mock_feed.go -package=mocks github.com/vitwit/boostpay/pricing Feed
//go:generate mockgen -destination=mock_wallet.go -package=mocks github.com/vitwit/boostpay/wallet EVMConnector,SolanaConnector
//go:generate mockgen -destination=mock_ledger.go -package=mocks github.com/vitwit/boostpay/clients SolanaLedger
