package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rdxfarm.ru/backend/internal/features/admin"
	"rdxfarm.ru/backend/internal/features/items"
	"rdxfarm.ru/backend/internal/features/referral"
	"rdxfarm.ru/backend/internal/features/rewards"
	"rdxfarm.ru/backend/internal/features/token"
	"rdxfarm.ru/backend/internal/features/users"
	"rdxfarm.ru/backend/internal/features/wallet"
)

// Handlers — все HTTP-обработчики, собранные композиционным корнем.
type Handlers struct {
	Users    *users.Handler
	Wallet   *wallet.Handler
	Items    *items.Handler
	Rewards  *rewards.Handler
	Token    *token.Handler
	Referral *referral.Handler
	Admin    *admin.Handler
}

// NewRouter собирает таблицу маршрутов API.
func NewRouter(h *Handlers, usersSvc *users.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// Публичные маршруты
		r.Post("/auth/register", h.Users.Register)
		r.Post("/auth/login", h.Users.Login)
		r.Get("/generators", h.Items.Catalog)
		r.Get("/rdx/price", h.Token.GetPrice)
		r.Get("/rdx/price/history", h.Token.GetPriceHistory)

		// Требуют сессию
		r.Group(func(r chi.Router) {
			r.Use(Auth(usersSvc))

			r.Get("/auth/me", h.Users.Me)
			r.Post("/auth/logout", h.Users.Logout)

			r.Get("/wallet/balance", h.Wallet.GetBalance)
			r.Get("/wallet/transactions", h.Wallet.GetTransactions)
			r.Post("/wallet/deposit", h.Wallet.Deposit)
			r.Post("/wallet/withdraw", h.Wallet.Withdraw)

			r.Get("/items", h.Items.GetItems)
			r.Post("/items/buy", h.Items.Buy)
			r.Post("/items/{id}/sell", h.Items.Sell)

			r.Post("/rewards/collect", h.Rewards.Collect)

			r.Post("/rdx/convert", h.Token.Convert)
			r.Get("/rdx/conversions", h.Token.GetConversions)

			r.Get("/referral/code", h.Referral.GetCode)
			r.Get("/referral/stats", h.Referral.GetStats)

			// Вход в админ-панель: сессия плюс пароль администратора
			r.Post("/admin/login", h.Admin.Login)

			// Остальная админка требует роль admin
			r.Group(func(r chi.Router) {
				r.Use(AdminOnly)

				r.Get("/admin/stats", h.Admin.GetStats)
				r.Get("/admin/settings", h.Admin.GetSettings)
				r.Put("/admin/settings", h.Admin.UpdateSetting)
				r.Get("/admin/transactions", h.Admin.GetTransactions)
				r.Get("/admin/deposits", h.Admin.GetDeposits)
				r.Post("/admin/pool/mint", h.Admin.Mint)
				r.Post("/admin/pool/burn", h.Admin.Burn)
				r.Post("/admin/pool/send", h.Admin.SendToUser)
			})
		})
	})

	return r
}
