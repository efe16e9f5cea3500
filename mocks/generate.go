package mocks

//go:generate mockgen -destination=./mock_dashboard_api.go -package=mocks github.com/cryptopro-lab/cryptopro-client/internal/dashboard API
//go:generate mockgen -destination=./mock_dashboard_notifier.go -package=mocks github.com/cryptopro-lab/cryptopro-client/internal/dashboard Notifier
//go:generate mockgen -destination=./mock_market_source.go -package=mocks github.com/cryptopro-lab/cryptopro-client/internal/marketwatch Source
