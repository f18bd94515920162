package fins

import "github.com/sirupsen/logrus"

// NodeArg accepts either a bare node number or a pre-built Node at the
// configuration-builder entry points, mirroring the dynamic overload
// used for AddressArg.
type NodeArg struct {
	plain byte
	node  *Node
	isSet bool
}

// NodeNumber wraps a bare node number (network 0, unit 0 implied).
func NodeNumber(n byte) NodeArg { return NodeArg{plain: n, isSet: true} }

// NodeValue wraps a pre-built Node.
func NodeValue(n Node) NodeArg { return NodeArg{node: &n, isSet: true} }

func (a NodeArg) resolve() Node {
	if a.node != nil {
		return *a.node
	}
	return Node{Node: a.plain}
}

// SimpleConfig returns Settings for the common case: default ICF,
// destination the PLC node on network 0, source the supervisor node on
// network 0.
func SimpleConfig(host string, plcNode, pcNode byte, protocol Protocol, port int) Settings {
	s, _ := NewConfig(ConfigOptions{
		Host:     host,
		Port:     port,
		Protocol: protocol,
		PLCNode:  NodeNumber(plcNode),
		PCNode:   NodeNumber(pcNode),
	})
	return s
}

// ConfigOptions is the fully parameterized input to NewConfig.
type ConfigOptions struct {
	Host     string
	Port     int
	Protocol Protocol
	PLCNode  NodeArg
	PCNode   NodeArg
	ICF      byte
	Logger   *logrus.Logger
}

// NewConfig builds a Settings record from semantic PLC/PC node
// parameters instead of raw header bytes. If the two nodes sit on
// different networks, a warning is logged (not a fatal error) and the
// Settings is still returned -- matching the source's
// "non-fatal warning" behavior for cross-network topologies.
func NewConfig(opts ConfigOptions) (Settings, error) {
	plc := opts.PLCNode.resolve()
	if !opts.PLCNode.isSet {
		plc = Node{Node: 0}
	}
	pc := opts.PCNode.resolve()
	if !opts.PCNode.isSet {
		pc = Node{Node: 1}
	}

	icf := opts.ICF
	if icf == 0 {
		icf = DefaultICF
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if plc.Network != pc.Network {
		logger.WithFields(logrus.Fields{
			"plc_network": plc.Network,
			"pc_network":  pc.Network,
		}).Warn("fins: PLC and PC nodes are on different networks")
	}

	return Settings{
		Host:     opts.Host,
		Port:     opts.Port,
		Protocol: opts.Protocol,
		ICF:      icf,
		DNA:      plc.Network,
		DA1:      plc.Node,
		DA2:      plc.Unit,
		SNA:      pc.Network,
		SA1:      pc.Node,
		SA2:      pc.Unit,
		Logger:   logger,
	}, nil
}

// QuickConnect builds a SimpleConfig and immediately connects,
// returning a ready-to-use Client.
func QuickConnect(host string, plcNode, pcNode byte, protocol Protocol) (*Client, error) {
	settings := SimpleConfig(host, plcNode, pcNode, protocol, 9600)
	client, err := NewClient(settings)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(); err != nil {
		return nil, err
	}
	return client, nil
}
