package mqtt

import (
	"fmt"
	"strconv"
	"strings"
)

// TopicPrefix is the root of every Cuepad topic.
const TopicPrefix = "cuepad"

// Topics provides builders for Cuepad MQTT topics.
//
//	topics := mqtt.Topics{}
//	topics.PadPress(3)      // "cuepad/pad/3/press"
//	topics.PadAppearance(3) // "cuepad/pad/3/appearance"
type Topics struct{}

// PadPress is the inbound topic that presses pad index.
func (Topics) PadPress(index int) string {
	return fmt.Sprintf("%s/pad/%d/press", TopicPrefix, index)
}

// PadRelease is the inbound topic that releases pad index.
func (Topics) PadRelease(index int) string {
	return fmt.Sprintf("%s/pad/%d/release", TopicPrefix, index)
}

// PadAppearance is the retained outbound topic carrying a pad's rendered state.
func (Topics) PadAppearance(index int) string {
	return fmt.Sprintf("%s/pad/%d/appearance", TopicPrefix, index)
}

// PadPressed is the outbound event topic published after a handled press.
func (Topics) PadPressed(index int) string {
	return fmt.Sprintf("%s/pad/%d/pressed", TopicPrefix, index)
}

// PauseSet is the inbound topic that engages or releases the global pause.
func (Topics) PauseSet() string {
	return TopicPrefix + "/pause/set"
}

// PauseState is the retained outbound topic carrying the global pause flag.
func (Topics) PauseState() string {
	return TopicPrefix + "/pause/state"
}

// SystemStatus carries online/offline status and the Last Will message.
func (Topics) SystemStatus() string {
	return TopicPrefix + "/system/status"
}

// AllPadPresses matches every pad press topic.
func (Topics) AllPadPresses() string {
	return TopicPrefix + "/pad/+/press"
}

// AllPadReleases matches every pad release topic.
func (Topics) AllPadReleases() string {
	return TopicPrefix + "/pad/+/release"
}

// ParsePadTopic extracts the pad index and verb from "cuepad/pad/{index}/{verb}".
func ParsePadTopic(topic string) (index int, verb string, ok bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[0] != TopicPrefix || parts[1] != "pad" {
		return 0, "", false
	}
	index, err := strconv.Atoi(parts[2])
	if err != nil || index < 0 {
		return 0, "", false
	}
	return index, parts[3], true
}
