/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package netinfo provides LAN address discovery for the FedGuard launcher.
// netinfo 包为 FedGuard 启动器提供局域网地址发现功能。
//
// This package provides:
// 此包提供：
// - Local IP discovery via UDP dial / 通过 UDP dial 发现本机 IP
// - Join-URL banner printing / 加入 URL 横幅打印
package netinfo

import (
	"fmt"
	"io"
	"net"
	"strings"
)

// Default values for discovery
// 发现功能的默认值
const (
	// DialProbeAddr is the address used to select the outbound interface.
	// The dial never sends a packet; it only asks the kernel for a route.
	// DialProbeAddr 是用于选择出站网卡的地址。
	// dial 不会真正发送数据包，只是向内核询问路由。
	DialProbeAddr = "8.8.8.8:1"

	// FallbackIP is returned when no outbound route exists.
	// FallbackIP 在没有出站路由时返回。
	FallbackIP = "127.0.0.1"

	// bannerWidth is the width of the banner separator line.
	// bannerWidth 是横幅分隔线的宽度。
	bannerWidth = 40
)

// LocalIP returns the host's LAN address.
// LocalIP 返回主机的局域网地址。
// It dials a UDP "connection" towards a public address and reads back the
// local source address the kernel picked. Any failure falls back to loopback.
// 它向公网地址发起 UDP "连接"，然后读取内核选择的本地源地址。
// 任何失败都会回退到环回地址。
func LocalIP() string {
	conn, err := net.Dial("udp", DialProbeAddr)
	if err != nil {
		return FallbackIP
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return FallbackIP
	}

	return addr.IP.String()
}

// JoinURL builds the URL other devices on the network use to join.
// JoinURL 构建网络中其他设备用于加入的 URL。
func JoinURL(ip string, port int) string {
	return fmt.Sprintf("http://%s:%d/", ip, port)
}

// Announce prints the federated host banner with the join URL.
// Announce 打印联邦主机横幅和加入 URL。
func Announce(w io.Writer, ip string, port int) error {
	sep := strings.Repeat("=", bannerWidth)

	_, err := fmt.Fprintf(w, "\n%s\n      FEDORA FEDERATED HOST\n%s\n\nLocal Network URL: %s\n\nOther devices on your Wi-Fi can join at this URL.\n%s\n\n",
		sep, sep, JoinURL(ip, port), sep)
	return err
}
