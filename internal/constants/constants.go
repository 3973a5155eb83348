package constants

const (
	AppName      = "talentlayer-client"
	KeystoreFile = "keystore.json"

	SchemaV1      = 1
	FilePerm      = 0o600
	DirectoryPerm = 0o700

	// DefaultNetwork is the network every client starts bound to.
	DefaultNetwork = "mumbai"
	DefaultChainID = 80001

	// BIP-44 path of the first Ethereum account.
	DefaultDerivationPath = "m/44'/60'/0'/0/0"

	// AAD for the encrypted keystore (must match on decrypt).
	KeystoreAAD = "talentlayer:keystore:v1"

	ContractTalentLayerID         = "talentLayerId"
	ContractTalentLayerService    = "serviceRegistry"
	ContractTalentLayerReview     = "talentLayerReview"
	ContractTalentLayerPlatformID = "talentLayerPlatformId"

	FuncUpdateProfileData = "updateProfileData"
)
