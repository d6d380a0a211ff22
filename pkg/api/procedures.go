package api

// Service names as they appear in procedure paths.
const (
	AuthServiceName    = "travel.v1.AuthService"
	TripServiceName    = "travel.v1.TripService"
	ExpenseServiceName = "travel.v1.ExpenseService"
)

// Procedure paths, e.g. "/travel.v1.TripService/CreateTrip".
const (
	AuthServiceRegisterProcedure       = "/travel.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/travel.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/travel.v1.AuthService/GetCurrentUser"

	TripServiceCreateTripProcedure             = "/travel.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure                = "/travel.v1.TripService/GetTrip"
	TripServiceListTripsProcedure              = "/travel.v1.TripService/ListTrips"
	TripServiceUpdateCurrencySettingsProcedure = "/travel.v1.TripService/UpdateCurrencySettings"
	TripServiceDeleteTripProcedure             = "/travel.v1.TripService/DeleteTrip"
	TripServiceAddMemberProcedure              = "/travel.v1.TripService/AddMember"
	TripServiceUpdateMemberRoleProcedure       = "/travel.v1.TripService/UpdateMemberRole"
	TripServiceRemoveMemberProcedure           = "/travel.v1.TripService/RemoveMember"
	TripServiceCreateInviteProcedure           = "/travel.v1.TripService/CreateInvite"
	TripServiceJoinTripProcedure               = "/travel.v1.TripService/JoinTrip"

	ExpenseServiceCreateExpenseProcedure = "/travel.v1.ExpenseService/CreateExpense"
	ExpenseServiceUpdateExpenseProcedure = "/travel.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure = "/travel.v1.ExpenseService/DeleteExpense"
	ExpenseServiceListExpensesProcedure  = "/travel.v1.ExpenseService/ListExpenses"
	ExpenseServiceRecordPaymentProcedure = "/travel.v1.ExpenseService/RecordPayment"
	ExpenseServiceListPaymentsProcedure  = "/travel.v1.ExpenseService/ListPayments"
	ExpenseServiceDeletePaymentProcedure = "/travel.v1.ExpenseService/DeletePayment"
	ExpenseServiceGetSettlementProcedure = "/travel.v1.ExpenseService/GetSettlement"
	ExpenseServiceConvertAmountProcedure = "/travel.v1.ExpenseService/ConvertAmount"
)
