package contract

// BuiltinFundraiser is the ID of the embedded ABI of a single Fundraiser
// contract, as created by the factory. Only the read side is included.
const BuiltinFundraiser = "fundraiser"

func init() {
	RegisterBuiltin(BuiltinKind{
		ID:          BuiltinFundraiser,
		Name:        "Fundraiser",
		Description: "One fundraiser created by the factory.",
		ABI:         mustParseABI(BuiltinFundraiser, fundraiserABIJSON),
	})
}

const fundraiserABIJSON = `[
  {"inputs": [], "name": "name", "outputs": [{"internalType": "string", "name": "", "type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "url", "outputs": [{"internalType": "string", "name": "", "type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "imageURL", "outputs": [{"internalType": "string", "name": "", "type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "description", "outputs": [{"internalType": "string", "name": "", "type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "beneficiary", "outputs": [{"internalType": "address payable", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "owner", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "totalDonations", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "donationsCount", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
]`
