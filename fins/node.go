package fins

import "fmt"

// Node is an immutable (network, node, unit) triple identifying one end
// of a FINS exchange on the wire.
type Node struct {
	Network byte
	Node    byte
	Unit    byte
}

// NewNode validates and constructs a Node. Network must be in [0,127],
// Node in [0,254], Unit in [0,15].
func NewNode(network, node, unit byte) (Node, error) {
	if network > 127 {
		return Node{}, fmt.Errorf("fins: network %d out of range [0,127]", network)
	}
	if node > 254 {
		return Node{}, fmt.Errorf("fins: node %d out of range [0,254]", node)
	}
	if unit > 15 {
		return Node{}, fmt.Errorf("fins: unit %d out of range [0,15]", unit)
	}
	return Node{Network: network, Node: node, Unit: unit}, nil
}

// PLCNode builds the node identity of a PLC: unit is always 0.
func PLCNode(network, node byte) (Node, error) {
	return NewNode(network, node, 0)
}

// SupervisorNode builds the node identity of a supervisory host: unit
// is always 0, caller chooses the node number.
func SupervisorNode(network, node byte) (Node, error) {
	return NewNode(network, node, 0)
}

func (n Node) String() string {
	return fmt.Sprintf("network %d, node %d, unit %d", n.Network, n.Node, n.Unit)
}
