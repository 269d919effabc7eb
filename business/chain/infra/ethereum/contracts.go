package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABIs covering only the functions the client calls.

const erc20ABIJSON = `[
	{"name":"allowance","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"approve","type":"function","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"decimals","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"name":"symbol","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]}
]`

const bountyArenaABIJSON = `[
	{"name":"createBounty","type":"function","stateMutability":"nonpayable","inputs":[{"name":"questionHash","type":"bytes32"},{"name":"category","type":"string"},{"name":"difficulty","type":"uint8"},{"name":"reward","type":"uint256"},{"name":"minRating","type":"uint256"},{"name":"duration","type":"uint256"}],"outputs":[{"name":"bountyId","type":"uint256"}]},
	{"name":"pickWinner","type":"function","stateMutability":"nonpayable","inputs":[{"name":"bountyId","type":"uint256"},{"name":"winner","type":"address"}],"outputs":[]}
]`

var (
	erc20ABI       abi.ABI
	bountyArenaABI abi.ABI
)

func init() {
	var err error
	erc20ABI, err = abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		panic("erc20 abi: " + err.Error())
	}
	bountyArenaABI, err = abi.JSON(strings.NewReader(bountyArenaABIJSON))
	if err != nil {
		panic("bounty arena abi: " + err.Error())
	}
}
