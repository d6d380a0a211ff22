// Package models defines the persisted domain models for trips.
//
// # Models
//
//   - Trip: a journey with its currency settings
//   - Member: a person on a trip, optionally linked to a User account
//   - Expense: a cost paid by one member and split among several
//   - Payment: a settle-up payment recorded between two members
//   - Invite: a one-time code that lets a user join a trip
//   - User: a registered account
//
// # Design Principles
//
// 1. **Members are not users**: a trip can list people who never sign up;
// only members with a UserID can call the API for that trip
// 2. **IDs, not pointers**: relationships use ID strings
// 3. **Money is decimal**: amounts use github.com/shopspring/decimal and
// carry their currency code
package models
