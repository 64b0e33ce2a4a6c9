package util_test

import (
	"fmt"
	"math"
	"math/big"

	"github.com/huynhtastic/programmingbitcoin/btcec"
	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/util"
)

func ExampleAmount() {
	a := util.Amount(0)
	fmt.Println("Zero Satoshi:", a)

	a = util.Amount(1e8)
	fmt.Println("100,000,000 Satoshis:", a)

	a = util.Amount(1e5)
	fmt.Println("100,000 Satoshis:", a)
	// Output:
	// Zero Satoshi: 0 BTC
	// 100,000,000 Satoshis: 1 BTC
	// 100,000 Satoshis: 0.001 BTC
}

func ExampleNewAmount() {
	amountOne, err := util.NewAmount(1)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(amountOne) //Output 1

	amountFraction, err := util.NewAmount(0.01234567)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(amountFraction) //Output 2

	amountZero, err := util.NewAmount(0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(amountZero) //Output 3

	amountNaN, err := util.NewAmount(math.NaN())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(amountNaN) //Output 4

	// Output: 1 BTC
	// 0.01234567 BTC
	// 0 BTC
	// invalid bitcoin amount
}

func ExampleAmount_unitConversions() {
	amount := util.Amount(44433322211100)

	fmt.Println("Satoshi to kBTC:", amount.Format(util.AmountKiloBTC))
	fmt.Println("Satoshi to BTC:", amount)
	fmt.Println("Satoshi to MilliBTC:", amount.Format(util.AmountMilliBTC))
	fmt.Println("Satoshi to MicroBTC:", amount.Format(util.AmountMicroBTC))
	fmt.Println("Satoshi to Satoshi:", amount.Format(util.AmountSatoshi))

	// Output:
	// Satoshi to kBTC: 444.333222111 kBTC
	// Satoshi to BTC: 444333.222111 BTC
	// Satoshi to MilliBTC: 444333222.111 mBTC
	// Satoshi to MicroBTC: 444333222111 μBTC
	// Satoshi to Satoshi: 44433322211100 Satoshi
}

// This example demonstrates deriving the testnet address of an uncompressed
// public key.
func ExampleNewAddressPubKeyHashFromPublicKey() {
	privKey, err := btcec.NewPrivateKey(big.NewInt(5002))
	if err != nil {
		fmt.Println(err)
		return
	}
	serialized := privKey.PubKey().SerializeUncompressed()
	addr, err := util.NewAddressPubKeyHashFromPublicKey(serialized, &chaincfg.TestNet3Params)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(addr)

	// Output: mmTPbXQFxboEtNRkwfh6K51jvdtHLxGeMA
}

// This example demonstrates exporting a private key in the Wallet Import
// Format and reading it back.
func ExampleDecodeWIF() {
	privKey, err := btcec.NewPrivateKey(big.NewInt(5003))
	if err != nil {
		fmt.Println(err)
		return
	}
	wif := util.EncodeWIF(privKey, &chaincfg.TestNet3Params, true)
	fmt.Println(wif)

	decoded, err := util.DecodeWIF(wif)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(decoded.PrivKey.Secret(), decoded.CompressPubKey,
		decoded.IsForNet(&chaincfg.TestNet3Params))

	// Output:
	// cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN8rFTv2sfUK
	// 5003 true true
}
