// Package mqtt provides the MQTT client used to drive pads remotely.
//
// External controllers publish presses and pause changes to the broker;
// the engine publishes retained pad appearance and pause state back. The
// bridge package owns the topic semantics; this package owns the connection.
//
//	cuepad/pad/{index}/press       inbound  {"velocity":0.8}
//	cuepad/pad/{index}/release     inbound
//	cuepad/pause/set               inbound  {"paused":true}
//	cuepad/pad/{index}/appearance  retained outbound
//	cuepad/pad/{index}/pressed     outbound event
//	cuepad/pause/state             retained outbound
//	cuepad/system/status           retained, also the Last Will
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.AllPadPresses(), 1,
//	    func(topic string, payload []byte) error {
//	        idx, _, _ := mqtt.ParsePadTopic(topic)
//	        return handlePress(idx, payload)
//	    })
package mqtt
