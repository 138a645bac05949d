package domain

// Role identifies a staff role in the consultancy.
type Role string

const (
	RoleMasterAdmin      Role = "MASTER_ADMIN"
	RoleRM               Role = "RM"
	RoleFieldBoy         Role = "FIELD_BOY"
	RoleValuationAnalyst Role = "VALUATION_ANALYST"
)

// Capability names a single permitted operation. Commands check capabilities
// centrally instead of comparing role strings at each call site.
type Capability string

const (
	CapCaseCreate         Capability = "case:create"
	CapCaseAdvance        Capability = "case:advance"
	CapCaseAssign         Capability = "case:assign"
	CapCaseClose          Capability = "case:close"
	CapValuationWrite     Capability = "valuation:write"
	CapValuationComplete  Capability = "valuation:complete"
	CapUserManage         Capability = "user:manage"
	CapReminderManage     Capability = "reminder:manage"
	CapCommunicationLog   Capability = "communication:log"
	CapKYCWrite           Capability = "kyc:write"
	CapDocumentUpload     Capability = "document:upload"
	CapAPITokenManage     Capability = "apitoken:manage"
	CapExpenditureSet     Capability = "expenditure:set"
)

// roleCapabilities maps each role to its permitted operations.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleMasterAdmin: {
		CapCaseCreate: true, CapCaseAdvance: true, CapCaseAssign: true, CapCaseClose: true,
		CapValuationWrite: true, CapValuationComplete: true, CapUserManage: true,
		CapReminderManage: true, CapCommunicationLog: true, CapKYCWrite: true,
		CapDocumentUpload: true, CapAPITokenManage: true, CapExpenditureSet: true,
	},
	RoleRM: {
		CapCaseCreate: true, CapCaseAdvance: true, CapCaseClose: true,
		CapCommunicationLog: true, CapKYCWrite: true, CapDocumentUpload: true,
	},
	RoleFieldBoy: {
		CapDocumentUpload: true, CapCommunicationLog: true,
	},
	RoleValuationAnalyst: {
		CapValuationWrite: true, CapValuationComplete: true, CapExpenditureSet: true,
	},
}

// HasCapability reports whether the role is permitted to perform the operation.
func (r Role) HasCapability(c Capability) bool {
	return roleCapabilities[r][c]
}

// ValidRole reports whether the string names a known role.
func ValidRole(r Role) bool {
	_, ok := roleCapabilities[r]
	return ok
}
