// Package models defines the records kept by the A.T Commodities back office.
//
// # Records
//
//   - Employee, Client: master data, seeded on first start
//   - AttendanceRecord: one check-in/check-out per employee per day
//   - Invoice, InvoiceItem: client invoices with their computed totals
//   - Delivery: vehicle dispatch log
//   - Operator: back-office login account
//
// Relationships use ID strings rather than pointers. Dates are stored as
// "2006-01-02" strings and times of day as "15:04:05", matching the
// attendance sheets and delivery logs the office already keeps.
package models
