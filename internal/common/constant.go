package common

// DefaultStepUpThreshold is the transaction amount above which step-up
// authentication is required. Amounts equal to the threshold do not step up.
const DefaultStepUpThreshold = 150.0

// CredentialHandlePrefix prefixes the simulated credential handles issued by
// the passkey registration ceremony.
const CredentialHandlePrefix = "simulated-public-key-"
