package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// quantityPrecision is the fixed precision purchase quantities are rounded
// down to. Rounding down means a buy can never spend more capital than the
// invest amount allows.
const quantityPrecision = 6

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// position is the bookkeeping state machine for one simulation run. It has
// exactly two states, Flat (quantity zero) and Long (quantity positive), and
// only open/close may move between them. One instance per run, never shared.
type position struct {
	capital     decimal.Decimal
	quantity    decimal.Decimal
	entryPrice  decimal.Decimal
	entryDate   time.Time
	entrySignal string
}

func newPosition(initialCapital decimal.Decimal) *position {
	return &position{capital: initialCapital}
}

func (p *position) isOpen() bool {
	return p.quantity.IsPositive()
}

// value returns the current portfolio value at the given price.
func (p *position) value(price decimal.Decimal) decimal.Decimal {
	return p.capital.Add(p.quantity.Mul(price))
}

// currentReturn returns the unrealized return in percent against the entry
// price. Only meaningful while the position is open.
func (p *position) currentReturn(price decimal.Decimal) decimal.Decimal {
	if !p.entryPrice.IsPositive() {
		return decimal.Zero
	}
	return price.Sub(p.entryPrice).Div(p.entryPrice).Mul(hundred).Round(ratioPrecision)
}

// open transitions Flat -> Long. Slippage worsens the fill price and the
// commission is paid out of the invest amount, so capital drops by the gross
// investAmount while only the net amount buys stock.
func (p *position) open(price, investAmount, slippage, commissionRate decimal.Decimal, date time.Time, signal string) {
	buyPrice := price.Mul(one.Add(slippage))
	commission := investAmount.Mul(commissionRate)
	netAmount := investAmount.Sub(commission)

	p.quantity = netAmount.Div(buyPrice).RoundDown(quantityPrecision)
	p.capital = p.capital.Sub(investAmount)
	p.entryPrice = buyPrice
	p.entryDate = date
	p.entrySignal = signal
}

// close transitions Long -> Flat and returns the net sale proceeds after
// slippage and commission. Capital is credited with the net amount.
func (p *position) close(price, slippage, commissionRate decimal.Decimal) decimal.Decimal {
	sellPrice := price.Mul(one.Sub(slippage))
	grossAmount := p.quantity.Mul(sellPrice)
	commission := grossAmount.Mul(commissionRate)
	netAmount := grossAmount.Sub(commission)

	p.capital = p.capital.Add(netAmount)
	p.reset()
	return netAmount
}

// liquidate folds the position back into capital at the given price with no
// slippage or commission. End-of-run cleanup only, not a live order.
func (p *position) liquidate(price decimal.Decimal) decimal.Decimal {
	proceeds := p.quantity.Mul(price)
	p.capital = p.capital.Add(proceeds)
	p.reset()
	return proceeds
}

func (p *position) reset() {
	p.quantity = decimal.Zero
	p.entryPrice = decimal.Zero
	p.entryDate = time.Time{}
	p.entrySignal = ""
}
