package contract

// BuiltinFactory is the ID of the embedded FundraiserFactory ABI, used when
// no artifact file is configured.
//
// Function selectors:
//
//	createFundraiser(string,string,string,string,address) → 0x11d752ad
//	fundraisersCount()                                    → 0x9d3b4355
//	fundraisers(uint256,uint256)                          → 0x704914f8
const BuiltinFactory = "factory"

func init() {
	RegisterBuiltin(BuiltinKind{
		ID:          BuiltinFactory,
		Name:        "FundraiserFactory",
		Description: "Creates Fundraiser contracts and pages through them.",
		ABI:         mustParseABI(BuiltinFactory, factoryABIJSON),
	})
}

const factoryABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "contract Fundraiser", "name": "fundraiser", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "owner", "type": "address"}
    ],
    "name": "FundraiserCreated",
    "type": "event"
  },
  {
    "inputs": [
      {"internalType": "string", "name": "name", "type": "string"},
      {"internalType": "string", "name": "url", "type": "string"},
      {"internalType": "string", "name": "imageURL", "type": "string"},
      {"internalType": "string", "name": "description", "type": "string"},
      {"internalType": "address payable", "name": "beneficiary", "type": "address"}
    ],
    "name": "createFundraiser",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "fundraisersCount",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "limit", "type": "uint256"},
      {"internalType": "uint256", "name": "offset", "type": "uint256"}
    ],
    "name": "fundraisers",
    "outputs": [{"internalType": "contract Fundraiser[]", "name": "coll", "type": "address[]"}],
    "stateMutability": "view",
    "type": "function"
  }
]`
