package platform

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"net"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const holderQueryTimeout = 500 * time.Millisecond

// InstanceGuard holds the single-instance lock. While held it answers every
// connection with a one-line description of the holder.
type InstanceGuard struct {
	listener net.Listener
	address  string
	holder   string
}

// AcquireSingleInstance attempts to bind a localhost port derived from appName.
// When the port is taken, the returned error is marked ErrAlreadyRunning and
// names the running holder if it answers.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		holder, queryErr := queryHolder(address)
		if queryErr != nil {
			holder = "holder did not answer"
		}
		return nil, errors.Mark(errors.Wrapf(err, "%s already running on %s (%s)", appName, address, holder), ErrAlreadyRunning)
	}

	guard := &InstanceGuard{
		listener: listener,
		address:  address,
		holder:   HolderLine(os.Getpid(), time.Now()),
	}
	go guard.serve()
	return guard, nil
}

// HolderLine describes a running instance.
func HolderLine(pid int, since time.Time) string {
	return fmt.Sprintf("pid %d since %s", pid, since.Format(time.DateTime))
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// Holder returns the line served to other instances.
func (guard *InstanceGuard) Holder() string {
	if guard == nil {
		return ""
	}
	return guard.holder
}

func (guard *InstanceGuard) serve() {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(holderQueryTimeout))
		_, _ = fmt.Fprintln(conn, guard.holder)
		_ = conn.Close()
	}
}

func queryHolder(address string) (string, error) {
	conn, err := net.DialTimeout("tcp", address, holderQueryTimeout)
	if err != nil {
		return "", errors.Wrap(err, "dial holder")
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(holderQueryTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "read holder")
	}
	return strings.TrimSpace(line), nil
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
