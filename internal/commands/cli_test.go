package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLedger = `~!~,Accounts
Checking,,100.00,main,Calculated
Cash,,20.00,,Dynamic
~!~,Transactions
Paycheck,,100.00,Checking,2024-01-01,CONFIRMED,
Rent,30.00,,Checking,2024-01-02,CONFIRMED,
Dinner,15.00,,Checking,2024-02-01,PLANNED,
`

const reconciledLedger = `~!~,Accounts
Checking,,70.00,main,Calculated
Cash,,20.00,,Dynamic
~!~,Transactions
Paycheck,,100.00,Checking,2024-01-01,CONFIRMED,
Rent,30.00,,Checking,2024-01-02,CONFIRMED,
Dinner,15.00,,Checking,2024-02-01,PLANNED,
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportExport(t *testing.T) {
	dir := initProject(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "ledger.csv"), sampleLedger)

	out, err := runFJ(t, "-C", dir, "import", src)
	require.NoError(t, err, out)

	exported := runFJStdout(t, "-C", dir, "export")
	assert.Equal(t, reconciledLedger, exported)

	accounts := runFJStdout(t, "-C", dir, "export", "--accounts")
	assert.Equal(t, "Checking,,70.00,main,Calculated\nCash,,20.00,,Dynamic\n", accounts)

	dst := filepath.Join(t.TempDir(), "out.csv")
	out, err = runFJ(t, "-C", dir, "export", "-o", dst)
	require.NoError(t, err, out)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, reconciledLedger, string(data))

	_, err = runFJ(t, "-C", dir, "export", "--accounts", "--transactions")
	assert.Error(t, err)
}

func TestImport_Replace(t *testing.T) {
	dir := initProject(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "ledger.csv"), sampleLedger)

	for range 2 {
		out, err := runFJ(t, "-C", dir, "import", "--replace", src)
		require.NoError(t, err, out)
	}
	assert.Equal(t, reconciledLedger, runFJStdout(t, "-C", dir, "export"))
}

func TestImport_BadFileLeavesLedger(t *testing.T) {
	dir := initProject(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "ledger.csv"), sampleLedger)
	out, err := runFJ(t, "-C", dir, "import", src)
	require.NoError(t, err, out)

	bad := writeFile(t, filepath.Join(t.TempDir(), "bad.csv"), "~!~,Accounts\nChecking,,1.00\n~!~,Transactions\n")
	out, err = runFJ(t, "-C", dir, "import", "--replace", bad)
	require.Error(t, err)
	assert.Contains(t, out, "accounts line 2")

	assert.Equal(t, reconciledLedger, runFJStdout(t, "-C", dir, "export"))
}

func TestImportLegacy_NewAccount(t *testing.T) {
	dir := initProject(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "old.csv"),
		"Name,Debit,Credit,Date,Notes\nPaycheck,,1000.00,01/05/24,\nRent,500.00,,01/06/24,\n")

	out, err := runFJ(t, "-C", dir, "import-legacy", src)
	require.NoError(t, err, out)

	accounts := runFJStdout(t, "-C", dir, "export", "--accounts")
	assert.Equal(t, "Imported,,500.00,Imported from a CSV file,Calculated\n", accounts)
}

func TestAccountsAndTransactions(t *testing.T) {
	dir := initProject(t)

	out, err := runFJ(t, "-C", dir, "accounts", "add", "Checking")
	require.NoError(t, err, out)
	acctID := uuidPattern.FindString(out)
	require.NotEmpty(t, acctID, out)

	out, err = runFJ(t, "-C", dir, "tx", "add", "Paycheck", "--account", acctID,
		"--amount", "100", "--date", "2024-01-01", "--type", "CONFIRMED")
	require.NoError(t, err, out)

	out, err = runFJ(t, "-C", dir, "tx", "add", "Groceries", "--account", acctID,
		"--amount=-30", "--date", "2024-01-02", "--type", "CONFIRMED", "--notes", "weekly")
	require.NoError(t, err, out)
	groceriesID := uuidPattern.FindString(out)
	require.NotEmpty(t, groceriesID, out)

	list := runFJStdout(t, "-C", dir, "accounts", "list")
	assert.Contains(t, list, "Checking")
	assert.Contains(t, list, "70.00")

	txList := runFJStdout(t, "-C", dir, "tx", "list", "--account", acctID)
	assert.Contains(t, txList, "Paycheck")
	assert.Contains(t, txList, "Groceries")

	ranged := runFJStdout(t, "-C", dir, "tx", "list", "--from", "2024-01-02", "--to", "2024-01-31")
	assert.Contains(t, ranged, "Groceries")
	assert.NotContains(t, ranged, "Paycheck")

	out, err = runFJ(t, "-C", dir, "tx", "delete", groceriesID)
	require.NoError(t, err, out)

	assert.Equal(t, "Checking,,100.00,,Calculated\n", runFJStdout(t, "-C", dir, "export", "--accounts"))

	_, err = runFJ(t, "-C", dir, "tx", "add", "Bad", "--amount", "1", "--type", "DONE")
	assert.Error(t, err)
}

func TestAccounts_DuplicateName(t *testing.T) {
	dir := initProject(t)
	out, err := runFJ(t, "-C", dir, "accounts", "add", "Checking")
	require.NoError(t, err, out)

	out, err = runFJ(t, "-C", dir, "accounts", "add", "Checking")
	require.Error(t, err)
	assert.Contains(t, out, "already exists")
}

func TestActivity(t *testing.T) {
	dir := initProject(t)

	out, err := runFJ(t, "-C", dir, "activity")
	require.NoError(t, err, out)
	assert.Contains(t, out, "No activity recorded")

	src := writeFile(t, filepath.Join(t.TempDir(), "ledger.csv"), sampleLedger)
	out, err = runFJ(t, "-C", dir, "import", src)
	require.NoError(t, err, out)
	out, err = runFJ(t, "-C", dir, "accounts", "add", "Savings", "--notes", "rainy day, mostly")
	require.NoError(t, err, out)

	log := runFJStdout(t, "-C", dir, "activity")
	assert.Contains(t, log, "import_ledger")
	assert.Contains(t, log, "add_account")
	assert.Contains(t, log, "Savings")

	filtered := runFJStdout(t, "-C", dir, "activity", "--action", "add_account")
	assert.Contains(t, filtered, "Savings")
	assert.NotContains(t, filtered, "import_ledger")

	newest := runFJStdout(t, "-C", dir, "activity", "-n", "1")
	assert.Contains(t, newest, "add_account")
	assert.NotContains(t, newest, "import_ledger")

	_, err = runFJ(t, "-C", dir, "activity", "-n", "-1")
	assert.Error(t, err)
}

func TestReconcile(t *testing.T) {
	dir := initProject(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "ledger.csv"), sampleLedger)
	out, err := runFJ(t, "-C", dir, "import", src)
	require.NoError(t, err, out)

	out = runFJStdout(t, "-C", dir, "reconcile")
	assert.Contains(t, out, "Checking")
	assert.Contains(t, out, "70.00")

	_, err = runFJ(t, "-C", dir, "reconcile", "00000000-0000-4000-8000-000000000001")
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := initProject(t)
	importDir := filepath.Join(dir, "import")
	writeFile(t, filepath.Join(importDir, "ledger.csv"), sampleLedger)

	out, err := runFJ(t, "-C", dir, "scan", "--dry-run")
	require.NoError(t, err, out)
	assert.Contains(t, out, "would import")
	_, err = os.Stat(filepath.Join(importDir, "ledger.csv"))
	require.NoError(t, err, "dry run leaves the file")

	out, err = runFJ(t, "-C", dir, "scan")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(importDir, "processed", "ledger.csv"))
	require.NoError(t, err, "file moved to processed")
	assert.Equal(t, reconciledLedger, runFJStdout(t, "-C", dir, "export"))

	data, err := os.ReadFile(filepath.Join(dir, "logs", "activity.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "import_ledger")
}

func TestScan_ReportsFailures(t *testing.T) {
	dir := initProject(t)
	importDir := filepath.Join(dir, "import")
	writeFile(t, filepath.Join(importDir, "junk.csv"), "a,b\n")

	out, err := runFJ(t, "-C", dir, "scan")
	require.Error(t, err)
	assert.Contains(t, out, "1 of 1 files failed")

	_, err = os.Stat(filepath.Join(importDir, "junk.csv"))
	assert.NoError(t, err, "failed file stays in place")
}
