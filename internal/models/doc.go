// Package models defines the core domain records for spendwise.
//
// # Records
//
//   - User: an account that owns expenses, budgets, and alerts
//   - Expense: a single expense, optionally shared among participants
//   - Budget: a monthly spending target for one category
//   - Alert: a persisted budget-threshold notification
//   - Settlement: a payment between two users that reduces an outstanding balance
//
// # Design Principles
//
//  1. **Money is decimal**: all amounts use shopspring/decimal, never float64,
//     so that equal splits and accumulated balances stay exact.
//  2. **Avoid circular references**: records hold ID strings, not pointers,
//     for relationships (payer, participants, budget references).
//  3. **Derived state is not a record**: balances and budget status are
//     computed fresh on every query and live in the calculator and service
//     packages, never here.
package models
