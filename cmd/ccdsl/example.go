package main

// exampleSource is the canned program written out by `ccdsl example`: a
// minimal token contract that exercises state, an event, a require, and a
// constant-foldable arithmetic expression.
const exampleSource = `contract Token {
    state mut balance: u64 = 0;
    state owner: address;

    event Transfer(indexed from: address, indexed to: address, amount: u64);

    public fn mint(to: address, amount: u64) {
        require(amount > 0);
        balance = balance + amount;
        emit Transfer(owner, to, amount);
    }

    public fn total_after_bonus(): u64 {
        let base = 10 + 20;
        let bonus = 5 * 10;
        return base + bonus;
    }
}
`
