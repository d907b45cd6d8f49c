// Package token — price.go содержит чистую математику экономики RDX:
// кривую цены и расчёт конвертации. Функции не ходят в БД,
// поэтому покрываются юнит-тестами без инфраструктуры.
package token

import (
	"github.com/shopspring/decimal"

	"rdxfarm.ru/backend/internal/common"
)

// PriceCurve — параметры кривой цены RDX.
type PriceCurve struct {
	// BasePrice — цена при нулевой эмиссии (USDT за 1 RDX)
	BasePrice decimal.Decimal
	// Scale — объём эмиссии, при котором цена падает вдвое
	Scale decimal.Decimal
}

// PriceAt вычисляет спот-цену RDX при заданной эмиссии.
//
// Формула: basePrice / (1 + circulation / scale).
// Цена строго убывает с ростом эмиссии, всегда положительна,
// стремится к basePrice при circulation → 0 и к нулю при circulation → ∞.
// Результат не округляется — округление происходит на границе записи
// (MoneyString), иначе малые изменения эмиссии не двигали бы цену.
func (c PriceCurve) PriceAt(circulation decimal.Decimal) decimal.Decimal {
	denom := decimal.NewFromInt(1).Add(circulation.Div(c.Scale))
	return c.BasePrice.Div(denom)
}

// Quote — результат расчёта конвертации до её исполнения.
type Quote struct {
	From   Currency
	To     Currency
	Amount decimal.Decimal // исходная сумма (списывается целиком)
	Fee    decimal.Decimal // комиссия в исходной валюте
	Net    decimal.Decimal // сумма после комиссии
	Rate   decimal.Decimal // цена RDX, по которой считали
	Result decimal.Decimal // сумма к зачислению в целевой валюте
}

// MakeQuote считает конвертацию по текущей цене.
// Комиссия берётся с исходной суммы, результат зависит от направления:
//   - USDT→RDX: result = net / rate
//   - RDX→USDT: result = net * rate
func MakeQuote(from Currency, amount, feeRate, rate decimal.Decimal) Quote {
	fee := common.Round8(amount.Mul(feeRate))
	net := amount.Sub(fee)

	var result decimal.Decimal
	switch from {
	case CurrencyUSDT:
		result = common.Round8(net.Div(rate))
	case CurrencyRDX:
		result = common.Round8(net.Mul(rate))
	}

	return Quote{
		From:   from,
		To:     from.Other(),
		Amount: amount,
		Fee:    fee,
		Net:    net,
		Rate:   rate,
		Result: result,
	}
}

// CirculationDelta возвращает изменение эмиссии RDX от этой конвертации.
// Покупка RDX увеличивает эмиссию на зачисленную сумму,
// продажа RDX уменьшает её на списанную — бухгалтерия симметрична.
func (q Quote) CirculationDelta() decimal.Decimal {
	switch q.From {
	case CurrencyUSDT:
		return q.Result
	case CurrencyRDX:
		return q.Amount.Neg()
	}
	return decimal.Zero
}
