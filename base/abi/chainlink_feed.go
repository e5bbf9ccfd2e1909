package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ChainlinkFeedABI covers the read surface of a chainlink aggregator proxy
var ChainlinkFeedABI abi.ABI

func init() {
	_abi, err := abi.JSON(strings.NewReader(chainlinkFeedABIJson))
	if err != nil {
		panic("Failed to parse chainlink feed ABI")
	}
	ChainlinkFeedABI = _abi
}

var chainlinkFeedABIJson = `
[
  {
    "inputs": [],
    "name": "latestAnswer",
    "outputs": [
      {
        "internalType": "int256",
        "name": "",
        "type": "int256"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "decimals",
    "outputs": [
      {
        "internalType": "uint8",
        "name": "",
        "type": "uint8"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "latestRoundData",
    "outputs": [
      {
        "internalType": "uint80",
        "name": "roundId",
        "type": "uint80"
      },
      {
        "internalType": "int256",
        "name": "answer",
        "type": "int256"
      },
      {
        "internalType": "uint256",
        "name": "startedAt",
        "type": "uint256"
      },
      {
        "internalType": "uint256",
        "name": "updatedAt",
        "type": "uint256"
      },
      {
        "internalType": "uint80",
        "name": "answeredInRound",
        "type": "uint80"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  }
]

`
