// Package mockserver provides an in-memory CryptoPro exchange API for
// testing. It implements the same endpoints and response envelope as the
// production backend, with deterministic seed data.
package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/cryptopro-lab/cryptopro-client/internal/types"
)

// walletBalance keeps wallet funds in decimal form so deposits and
// withdrawals never accumulate float drift.
type walletBalance struct {
	Wallet    types.Wallet
	Available decimal.Decimal
	Locked    decimal.Decimal
	USDRate   decimal.Decimal
}

// ServerConfig holds configuration for the mock server.
type ServerConfig struct {
	// Users maps email to password for login.
	Users map[string]string
	// Accounts are the seed trading accounts. Every account gets the same
	// wallet currency set.
	Accounts []types.TradingAccount
	// WalletFunds maps currency to the initial available balance per wallet.
	WalletFunds map[string]float64
	// USDRates maps currency to its USD conversion rate.
	USDRates map[string]float64
	// TicketsPerAccount seeds the ticket ledger of every account.
	TicketsPerAccount int
}

// DefaultConfig returns a config with one user, two funded accounts and a
// seeded ticket ledger.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Users: map[string]string{"trader@example.com": "correct-horse"},
		Accounts: []types.TradingAccount{
			{ID: "acct-1", DisplayName: "Main", AccountNumber: "TA-000001", Status: types.AccountStatusActive},
			{ID: "acct-2", DisplayName: "Savings", AccountNumber: "TA-000002", Status: types.AccountStatusActive},
		},
		WalletFunds:       map[string]float64{"BTC": 2, "ETH": 10, "USDT": 50000},
		USDRates:          map[string]float64{"BTC": 64000, "ETH": 3400, "USDT": 1},
		TicketsPerAccount: 13,
	}
}

// MockExchangeServer is an in-memory CryptoPro backend for tests.
type MockExchangeServer struct {
	mu sync.RWMutex

	httpServer *http.Server
	listener   net.Listener

	users  map[string]string
	tokens map[string]string

	accounts   []types.TradingAccount
	wallets    map[string][]*walletBalance // keyed by trading account id
	tickets    map[string][]types.Ticket   // newest first
	market     []types.MarketData
	countries  []types.Country
	languages  []types.Language
	accountSeq int
}

// NewMockExchangeServer creates a new mock exchange server.
func NewMockExchangeServer(config ServerConfig) *MockExchangeServer {
	server := &MockExchangeServer{
		users:      make(map[string]string),
		tokens:     make(map[string]string),
		wallets:    make(map[string][]*walletBalance),
		tickets:    make(map[string][]types.Ticket),
		accountSeq: len(config.Accounts),
	}

	for email, password := range config.Users {
		server.users[email] = password
	}

	server.accounts = append(server.accounts, config.Accounts...)
	for _, account := range config.Accounts {
		server.seedWallets(account.ID, config.WalletFunds, config.USDRates)
		server.seedTickets(account.ID, config.TicketsPerAccount)
	}

	for currency, rate := range config.USDRates {
		server.market = append(server.market, types.MarketData{
			Symbol: currency,
			Name:   currency,
			Price:  rate,
			Change: 0,
		})
	}

	server.countries = []types.Country{
		{Code: "US", Name: "United States"},
		{Code: "DE", Name: "Germany"},
		{Code: "JP", Name: "Japan"},
	}
	server.languages = []types.Language{
		{Code: "en", Name: "English"},
		{Code: "de", Name: "German"},
	}

	return server
}

func (s *MockExchangeServer) seedWallets(accountID string, funds, rates map[string]float64) {
	for currency, amount := range funds {
		available := decimal.NewFromFloat(amount)
		rate := decimal.NewFromFloat(rates[currency])

		wb := &walletBalance{
			Available: available,
			Locked:    decimal.Zero,
			USDRate:   rate,
			Wallet: types.Wallet{
				ID:       fmt.Sprintf("%s-%s", accountID, strings.ToLower(currency)),
				Currency: currency,
			},
		}
		s.wallets[accountID] = append(s.wallets[accountID], wb)
	}
}

func (s *MockExchangeServer) seedTickets(accountID string, count int) {
	for i := count; i > 0; i-- {
		s.tickets[accountID] = append(s.tickets[accountID], types.Ticket{
			ID:           fmt.Sprintf("%s-ticket-%d", accountID, i),
			TicketType:   types.TicketType(i % 2),
			Amount:       float64(i * 10),
			TicketStatus: types.TicketStatus(i % 6),
		})
	}
}

// Start starts the mock server on the given address.
// If address is empty or ":0", a random available port is used.
func (s *MockExchangeServer) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	router := mux.NewRouter()

	router.HandleFunc("/api/auth/login", s.handleLogin).Methods("POST")
	router.HandleFunc("/api/auth/registration", s.handleRegistration).Methods("POST")
	router.HandleFunc("/api/market", s.handleMarket).Methods("GET")
	router.HandleFunc("/api/market/hero", s.handleHeroMarket).Methods("GET")
	router.HandleFunc("/api/countries", s.handleCountries).Methods("GET")
	router.HandleFunc("/api/languages", s.handleLanguages).Methods("GET")

	authed := router.NewRoute().Subrouter()
	authed.Use(s.requireAuth)
	authed.HandleFunc("/api/balance/trading-accounts", s.handleTradingAccounts).Methods("GET")
	authed.HandleFunc("/api/balance/wallets", s.handleWallets).Methods("GET")
	authed.HandleFunc("/api/balance/tickets", s.handleListTickets).Methods("GET")
	authed.HandleFunc("/api/balance/tickets", s.handleCreateTicket).Methods("POST")
	authed.HandleFunc("/api/trading/accounts", s.handleCreateTradingAccount).Methods("POST")

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	return nil
}

// Stop stops the mock server.
func (s *MockExchangeServer) Stop() error {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// BaseURL returns the base URL for the server.
func (s *MockExchangeServer) BaseURL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// WalletBalance returns the available balance of a wallet, or zero if the
// wallet does not exist.
func (s *MockExchangeServer) WalletBalance(accountID, walletID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, wb := range s.wallets[accountID] {
		if wb.Wallet.ID == walletID {
			f, _ := wb.Available.Float64()
			return f
		}
	}
	return 0
}

// TicketCount returns the number of tickets in an account's ledger.
func (s *MockExchangeServer) TicketCount(accountID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets[accountID])
}

// SetMarketData replaces the market overview snapshot.
func (s *MockExchangeServer) SetMarketData(data []types.MarketData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.market = data
}

// Envelope helpers

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
		"message": "",
	})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"data":    nil,
		"message": message,
	})
}

// requireAuth checks the bearer token issued by login.
func (s *MockExchangeServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			writeFailure(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		s.mu.RLock()
		_, ok := s.tokens[token]
		s.mu.RUnlock()

		if !ok {
			writeFailure(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handlers

// handleLogin handles POST /api/auth/login
func (s *MockExchangeServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	password, ok := s.users[req.Email]
	if !ok || password != req.Password {
		writeFailure(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token := uuid.New().String()
	s.tokens[token] = req.Email

	writeSuccess(w, map[string]string{"token": token})
}

// handleRegistration handles POST /api/auth/registration
func (s *MockExchangeServer) handleRegistration(w http.ResponseWriter, r *http.Request) {
	var req types.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.Username == "" {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		writeFailure(w, http.StatusConflict, "Email already registered")
		return
	}

	s.users[req.Email] = req.Password

	writeSuccess(w, nil)
}

// handleTradingAccounts handles GET /api/balance/trading-accounts
func (s *MockExchangeServer) handleTradingAccounts(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]types.TradingAccount, len(s.accounts))
	copy(accounts, s.accounts)

	writeSuccess(w, accounts)
}

// handleWallets handles GET /api/balance/wallets
func (s *MockExchangeServer) handleWallets(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("tradingAccountId")
	if accountID == "" {
		writeFailure(w, http.StatusBadRequest, "tradingAccountId is required")
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	balances, ok := s.wallets[accountID]
	if !ok {
		writeFailure(w, http.StatusNotFound, "Trading account not found")
		return
	}

	wallets := make([]types.Wallet, len(balances))
	for i, wb := range balances {
		wallets[i] = wb.snapshot()
	}

	writeSuccess(w, wallets)
}

// snapshot derives the float wallet view from the decimal balances.
func (wb *walletBalance) snapshot() types.Wallet {
	wallet := wb.Wallet

	total := wb.Available.Add(wb.Locked)
	wallet.AvailableBalance, _ = wb.Available.Float64()
	wallet.LockedBalance, _ = wb.Locked.Float64()
	wallet.TotalBalance, _ = total.Float64()
	wallet.USDEquivalent, _ = total.Mul(wb.USDRate).Float64()

	return wallet
}

// handleListTickets handles GET /api/balance/tickets
func (s *MockExchangeServer) handleListTickets(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("tradingAccountId")
	pageIndex, errIdx := strconv.Atoi(r.URL.Query().Get("pageIndex"))
	pageSize, errSize := strconv.Atoi(r.URL.Query().Get("pageSize"))

	if accountID == "" || errIdx != nil || errSize != nil || pageIndex < 0 || pageSize <= 0 {
		writeFailure(w, http.StatusBadRequest, "Invalid ticket query")
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ledger := s.tickets[accountID]

	start := pageIndex * pageSize
	if start >= len(ledger) {
		writeSuccess(w, []types.Ticket{})
		return
	}

	end := start + pageSize
	if end > len(ledger) {
		end = len(ledger)
	}

	page := make([]types.Ticket, end-start)
	copy(page, ledger[start:end])

	writeSuccess(w, page)
}

// handleCreateTicket handles POST /api/balance/tickets
func (s *MockExchangeServer) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.WalletID == "" || !req.Type.Valid() || req.Amount <= 0 {
		writeFailure(w, http.StatusBadRequest, "Invalid ticket request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accountID, wb := s.findWallet(req.WalletID)
	if wb == nil {
		writeFailure(w, http.StatusNotFound, "Wallet not found")
		return
	}

	amount := decimal.NewFromFloat(req.Amount)

	switch req.Type {
	case types.TicketTypeDeposit:
		wb.Available = wb.Available.Add(amount)
	case types.TicketTypeWithdrawal:
		if wb.Available.LessThan(amount) {
			writeFailure(w, http.StatusBadRequest, "Insufficient balance")
			return
		}
		wb.Available = wb.Available.Sub(amount)
	}

	ticket := types.Ticket{
		ID:           uuid.New().String(),
		TicketType:   req.Type,
		Amount:       req.Amount,
		TicketStatus: types.TicketStatusPending,
	}

	// Newest tickets first, matching the production ledger ordering.
	s.tickets[accountID] = append([]types.Ticket{ticket}, s.tickets[accountID]...)

	writeSuccess(w, ticket.ID)
}

func (s *MockExchangeServer) findWallet(walletID string) (string, *walletBalance) {
	for accountID, balances := range s.wallets {
		for _, wb := range balances {
			if wb.Wallet.ID == walletID {
				return accountID, wb
			}
		}
	}
	return "", nil
}

// handleCreateTradingAccount handles POST /api/trading/accounts
func (s *MockExchangeServer) handleCreateTradingAccount(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTradingAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.DisplayName) == "" {
		writeFailure(w, http.StatusBadRequest, "Display name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accountSeq++
	account := types.TradingAccount{
		ID:            uuid.New().String(),
		DisplayName:   strings.TrimSpace(req.DisplayName),
		AccountNumber: fmt.Sprintf("TA-%06d", s.accountSeq),
		Status:        types.AccountStatusActive,
	}

	s.accounts = append(s.accounts, account)
	s.wallets[account.ID] = nil
	s.tickets[account.ID] = nil

	writeSuccess(w, nil)
}

// handleMarket handles GET /api/market
func (s *MockExchangeServer) handleMarket(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	writeSuccess(w, s.market)
}

// handleHeroMarket handles GET /api/market/hero
func (s *MockExchangeServer) handleHeroMarket(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hero := s.market
	if len(hero) > 3 {
		hero = hero[:3]
	}

	writeSuccess(w, hero)
}

// handleCountries handles GET /api/countries
func (s *MockExchangeServer) handleCountries(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.countries)
}

// handleLanguages handles GET /api/languages
func (s *MockExchangeServer) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.languages)
}
